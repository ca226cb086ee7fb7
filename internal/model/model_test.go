package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	t.Parallel()
	for _, r := range []Role{RoleRenterBuyer, RolePrivateSeller, RoleAgency, RoleModerator, RoleAdmin} {
		require.True(t, r.Valid(), r)
	}
	require.False(t, Role("superuser").Valid())
	require.False(t, Role("").Valid())
}

func TestRoleIsStaff(t *testing.T) {
	t.Parallel()
	require.True(t, RoleModerator.IsStaff())
	require.True(t, RoleAdmin.IsStaff())
	require.False(t, RoleAgency.IsStaff())
	require.False(t, RoleRenterBuyer.IsStaff())
}

func TestFacilities(t *testing.T) {
	t.Parallel()

	p := Property{FacilityTags: "parking, balcony ,,elevator"}
	require.Equal(t, []string{"parking", "balcony", "elevator"}, p.Facilities())

	require.Nil(t, Property{}.Facilities())
	require.Empty(t, Property{FacilityTags: " , ,"}.Facilities())
}

func TestJoinFacilities(t *testing.T) {
	t.Parallel()
	require.Equal(t, "parking,balcony", JoinFacilities([]string{" parking", "", "balcony "}))
	require.Equal(t, "", JoinFacilities(nil))
}
