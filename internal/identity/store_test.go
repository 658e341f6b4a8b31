package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpas/internal/common"
	"rpas/internal/kvstore"
	"rpas/internal/logging"
	"rpas/internal/models"
)

func newTestStore(t *testing.T) (*Store, *kvstore.InMemoryStore) {
	t.Helper()
	kv := kvstore.NewInMemoryStore()
	return NewStore(kv, logging.NewDiscard()), kv
}

func TestSeedOnce_IsIdempotent(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	s.SeedOnce(ctx)
	first, err := kv.Get(ctx, usersKey)
	require.NoError(t, err)
	require.NotNil(t, first)

	s.SeedOnce(ctx)
	second, err := kv.Get(ctx, usersKey)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSeedOnce_DoesNotOverwriteExistingUsers(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	s.SeedOnce(ctx)

	// Mutate the collection the way enrollment would.
	_, err := s.AssignProgramAndReviewer(ctx, "BIT230001", "cs", "SUP100")
	require.NoError(t, err)
	mutated, err := kv.Get(ctx, usersKey)
	require.NoError(t, err)

	s.SeedOnce(ctx)
	after, err := kv.Get(ctx, usersKey)
	require.NoError(t, err)
	require.Equal(t, mutated, after)
}

func TestLogin_IDIsCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	tests := []struct {
		name string
		id   string
	}{
		{"exact case", "SUP100"},
		{"lower case", "sup100"},
		{"mixed case", "Sup100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := s.Login(ctx, tt.id, "pass100")
			require.NoError(t, err)
			assert.Equal(t, "SUP100", u.ID)
			assert.Equal(t, models.RoleReviewer, u.Role)
		})
	}
}

func TestLogin_PasswordIsExactMatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	_, err := s.Login(ctx, "SUP100", "PASS100")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur, "failed login must not leave a session behind")
}

func TestLogin_PersistsSessionSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	u, err := s.Login(ctx, "bit230001", "bit001")
	require.NoError(t, err)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
	assert.Equal(t, u.Name, cur.Name)
}

func TestLogin_CorruptUserCollectionSurfaces(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, usersKey, []byte("{not json")))

	_, err := s.Login(ctx, "SUP100", "pass100")
	require.ErrorIs(t, err, common.ErrCorruptData)
}

func TestCurrentUser_AbsentIsNotAnError(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestCurrentUser_UnreadableSnapshotTreatedAsAbsent(t *testing.T) {
	s, kv := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, sessionKey, []byte("garbage")))

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLogout_IsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	_, err := s.Login(ctx, "SUP100", "pass100")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestReviewersByProgram_FiltersRoleAndProgram(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	reviewers, err := s.ReviewersByProgram(ctx, "cs")
	require.NoError(t, err)
	require.Len(t, reviewers, 1)
	assert.Equal(t, "SUP100", reviewers[0].ID)

	none, err := s.ReviewersByProgram(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAssignProgramAndReviewer_UpdatesSubmitter(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	u, err := s.AssignProgramAndReviewer(ctx, "BIT230001", "is", "SUP200")
	require.NoError(t, err)
	assert.Equal(t, models.Program("is"), u.Program)
	assert.Equal(t, "SUP200", u.AssignedReviewerID)

	// The collection itself carries the update.
	users, err := s.loadUsers(ctx)
	require.NoError(t, err)
	for _, stored := range users {
		if stored.ID == "BIT230001" {
			assert.Equal(t, models.Program("is"), stored.Program)
			assert.Equal(t, "SUP200", stored.AssignedReviewerID)
			return
		}
	}
	t.Fatal("submitter missing from collection")
}

func TestAssignProgramAndReviewer_Guards(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	tests := []struct {
		name        string
		submitterID string
		program     models.Program
		reviewerID  string
		want        error
	}{
		{"unknown submitter", "BIT999999", "cs", "SUP100", common.ErrSubmitterNotFound},
		{"reviewer id is a submitter", "BIT230001", "cs", "BIT230002", common.ErrReviewerNotFound},
		{"unknown reviewer", "BIT230001", "cs", "SUP999", common.ErrReviewerNotFound},
		{"program mismatch", "BIT230001", "cs", "SUP200", common.ErrProgramMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AssignProgramAndReviewer(ctx, tt.submitterID, tt.program, tt.reviewerID)
			require.ErrorIs(t, err, tt.want)
		})
	}

	// A failed assignment leaves the submitter untouched.
	users, err := s.loadUsers(ctx)
	require.NoError(t, err)
	for _, stored := range users {
		if stored.ID == "BIT230001" {
			assert.Empty(t, stored.Program)
			assert.Empty(t, stored.AssignedReviewerID)
		}
	}
}

func TestAssignProgramAndReviewer_RewritesMatchingSession(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	_, err := s.Login(ctx, "BIT230001", "bit001")
	require.NoError(t, err)

	_, err = s.AssignProgramAndReviewer(ctx, "BIT230001", "se", "SUP300")
	require.NoError(t, err)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, models.Program("se"), cur.Program)
	assert.Equal(t, "SUP300", cur.AssignedReviewerID)
}

// sessionReadFailingStore delegates to an in-memory store but fails reads of
// the session key.
type sessionReadFailingStore struct {
	*kvstore.InMemoryStore
}

func (s *sessionReadFailingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == sessionKey {
		return nil, errors.New("disk gone")
	}
	return s.InMemoryStore.Get(ctx, key)
}

func TestAssignProgramAndReviewer_SucceedsWhenSessionReadFails(t *testing.T) {
	kv := &sessionReadFailingStore{InMemoryStore: kvstore.NewInMemoryStore()}
	s := NewStore(kv, logging.NewDiscard())
	ctx := context.Background()
	s.SeedOnce(ctx)

	// The collection update must land even though the resync step cannot
	// read the session snapshot.
	updated, err := s.AssignProgramAndReviewer(ctx, "BIT230001", "se", "SUP300")
	require.NoError(t, err)
	assert.Equal(t, models.Program("se"), updated.Program)

	stored, err := s.loadUsers(ctx)
	require.NoError(t, err)
	for _, u := range stored {
		if u.ID == "BIT230001" {
			assert.Equal(t, "SUP300", u.AssignedReviewerID)
		}
	}
}

func TestAssignProgramAndReviewer_LeavesForeignSessionAlone(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.SeedOnce(ctx)

	_, err := s.Login(ctx, "BIT230002", "bit002")
	require.NoError(t, err)

	_, err = s.AssignProgramAndReviewer(ctx, "BIT230001", "se", "SUP300")
	require.NoError(t, err)

	cur, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "BIT230002", cur.ID)
	assert.Empty(t, cur.Program)
}
