package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"estatecli/internal/model"
)

type recordedCall struct {
	method string
	path   string
	body   any
}

type fakeDoer struct {
	calls []recordedCall
	err   error
}

func (f *fakeDoer) Do(_ context.Context, method, path string, body, out any) error {
	f.calls = append(f.calls, recordedCall{method: method, path: path, body: body})
	return f.err
}

func TestBindings_PathsAndPayloads(t *testing.T) {
	t.Parallel()
	d := &fakeDoer{}
	c := &Client{c: d}
	ctx := context.Background()

	_, _ = c.Get(ctx, 42)
	_ = c.Delete(ctx, 42)
	_ = c.Verify(ctx, 42)
	_ = c.AddWish(ctx, 7)
	_ = c.UpdateRole(ctx, 3, model.RoleModerator)
	_ = c.CreateConversation(ctx)

	require.Equal(t, []recordedCall{
		{method: "GET", path: "/api/properties/42", body: nil},
		{method: "DELETE", path: "/api/properties/42", body: nil},
		{method: "PATCH", path: "/api/properties/42/verify", body: nil},
		{method: "POST", path: "/api/wishlist", body: map[string]int64{"propertyId": 7}},
		{method: "PATCH", path: "/api/user/3/role", body: map[string]model.Role{"role": model.RoleModerator}},
		{method: "POST", path: "/api/ai/conversations", body: nil},
	}, d.calls)
}

func TestFilterQuery(t *testing.T) {
	t.Parallel()

	require.Empty(t, filterQuery(model.PropertyFilter{}))

	q := filterQuery(model.PropertyFilter{
		Status:          model.StatusActive,
		TransactionType: model.TransactionRent,
		MinPrice:        500,
		MaxPrice:        1500,
		Rooms:           2,
		Search:          "city center",
		Sort:            "price_asc",
	})
	require.Equal(t,
		"?maxPrice=1500&minPrice=500&rooms=2&search=city+center&sort=price_asc&status=active&transactionType=rent",
		q)
}

func TestFilterQuery_ZeroRangesOmitted(t *testing.T) {
	t.Parallel()
	q := filterQuery(model.PropertyFilter{Status: model.StatusInactive})
	require.Equal(t, "?status=inactive", q)
}
