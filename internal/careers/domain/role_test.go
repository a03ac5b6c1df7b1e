package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		require.Equal(t, r, got)
	}

	got, err := ParseRole(" ADMIN ")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, got)

	for _, bad := range []string{"", "owner", "Admin", "SUPERUSER"} {
		_, err := ParseRole(bad)
		require.ErrorIs(t, err, ErrUnknownRole, bad)
	}
}

func TestRoleSet(t *testing.T) {
	t.Run("contains", func(t *testing.T) {
		require.True(t, ManageMembers.Contains(RoleOwner))
		require.True(t, ManageMembers.Contains(RoleAdmin))
		require.False(t, ManageMembers.Contains(RoleEditor))
		require.True(t, EditContent.Contains(RoleEditor))
		require.False(t, EditContent.Contains(RoleViewer))
		require.True(t, AnyMember.Contains(RoleViewer))
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, EditContent.Validate())
		require.ErrorIs(t, NewRoleSet().Validate(), ErrUnknownRole)
		require.ErrorIs(t, RoleSet(nil).Validate(), ErrUnknownRole)
		require.ErrorIs(t, NewRoleSet(RoleOwner, "ROOT").Validate(), ErrUnknownRole)
	})

	t.Run("slice is privilege ordered", func(t *testing.T) {
		require.Equal(t, []Role{RoleOwner, RoleEditor}, NewRoleSet(RoleEditor, RoleOwner).Slice())
	})
}
