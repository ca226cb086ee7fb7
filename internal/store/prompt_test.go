package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estatecli/internal/model"
)

func promptStoreWith(t *testing.T, fake *fakeAssistantAPI) *PromptStore {
	t.Helper()
	s := NewPromptStore(fake, zap.NewNop())
	s.LoadAll(context.Background())
	require.Empty(t, s.Status().Err)
	return s
}

// Editing back to the synced value clears the dirty flag; any divergence
// sets it.
func TestPromptStore_DirtyTrackingIdempotence(t *testing.T) {
	t.Parallel()
	fake := &fakeAssistantAPI{prompts: []model.Prompt{
		{Name: model.PromptRenterBuyer, Content: "You help renters."},
		{Name: model.PromptSellerAgency, Content: "You help sellers."},
	}}
	s := promptStoreWith(t, fake)

	require.False(t, s.HasChanges(model.PromptRenterBuyer))

	s.SetContent(model.PromptRenterBuyer, "You help renters and buyers.")
	require.True(t, s.HasChanges(model.PromptRenterBuyer))

	s.SetContent(model.PromptRenterBuyer, "You help renters.")
	require.False(t, s.HasChanges(model.PromptRenterBuyer), "reverting the edit clears the flag")

	// The other template is unaffected throughout.
	require.False(t, s.HasChanges(model.PromptSellerAgency))
}

// Saving promotes the working copy to the synced one and clears the flag.
func TestPromptStore_SaveSyncs(t *testing.T) {
	t.Parallel()
	fake := &fakeAssistantAPI{prompts: []model.Prompt{
		{Name: model.PromptRenterBuyer, Content: "old"},
	}}
	s := promptStoreWith(t, fake)

	s.SetContent(model.PromptRenterBuyer, "new")
	require.NoError(t, s.Save(context.Background(), model.PromptRenterBuyer))

	require.Equal(t, 1, fake.updateCalls)
	require.Equal(t, "new", fake.updatedLast.Content)
	require.False(t, s.HasChanges(model.PromptRenterBuyer))
	require.Equal(t, "new", s.Content(model.PromptRenterBuyer))
}

func TestPromptStore_SaveUnknownName(t *testing.T) {
	t.Parallel()
	fake := &fakeAssistantAPI{}
	s := NewPromptStore(fake, zap.NewNop())

	err := s.Save(context.Background(), "nope")
	require.Error(t, err)
	require.Zero(t, fake.updateCalls)
}
