package slack

import (
	"context"
	"testing"

	"cdr.dev/slog/v3/sloggers/slogtest"
	"github.com/stretchr/testify/require"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

func TestUserGroupRepository_FindAll(t *testing.T) {
	t.Parallel()

	fake, client := newFakeSlack(t)
	fake.handle("usergroups.list", map[string]any{
		"ok": true,
		"usergroups": []map[string]any{
			{"id": "S1", "name": "Team Alpha", "handle": "alpha", "users": []string{"U1", "U2"}},
			{"id": "S2", "name": "Team Beta", "handle": "beta", "users": []string{}},
		},
	})

	repo := NewUserGroupRepository(client, slogtest.Make(t, nil))
	groups, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, []*domain.UserGroup{
		{ID: "S1", Name: "Team Alpha", Handle: "alpha", Members: []string{"U1", "U2"}},
		{ID: "S2", Name: "Team Beta", Handle: "beta", Members: []string{}},
	}, groups)

	calls := fake.calls("usergroups.list")
	require.Len(t, calls, 1)
	require.Equal(t, "true", calls[0].Get("include_users"))
}

func TestUserGroupRepository_FindAll_Error(t *testing.T) {
	t.Parallel()

	fake, client := newFakeSlack(t)
	fake.handle("usergroups.list", map[string]any{"ok": false, "error": "missing_scope"})

	repo := NewUserGroupRepository(client, slogtest.Make(t, nil))
	_, err := repo.FindAll(context.Background())
	require.ErrorContains(t, err, "missing_scope")
}
