// Package identity owns the user collection and the persisted "current user"
// session snapshot. It is a leaf layer over the blob store: the submission
// store depends on it only through its callers, never directly.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"rpas/internal/common"
	"rpas/internal/kvstore"
	"rpas/internal/logging"
	"rpas/internal/models"
)

// Blob store keys, fixed since the first install.
const (
	usersKey   = "rpas/users"
	seededKey  = "rpas/users_seeded_v1"
	sessionKey = "rpas/current_user"
)

// Store reads and mutates the user collection. Collection mutations follow a
// read-whole, mutate, write-whole pattern, so they are serialized through a
// single mutex; two interleaved writers would otherwise silently drop each
// other's records.
type Store struct {
	store  kvstore.Store
	logger logging.Logger
	mu     sync.Mutex
}

func NewStore(store kvstore.Store, logger logging.Logger) *Store {
	return &Store{store: store, logger: logger}
}

// SeedOnce writes the initial user set unless the seed marker is already
// present. Failures are logged and swallowed: a missing seed must not block
// startup, and the next start retries.
func (s *Store) SeedOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	marker, err := s.store.Get(ctx, seededKey)
	if err != nil {
		s.logger.Warn(ctx, "seed users: read marker failed", "error", err)
		return
	}
	if marker != nil {
		return
	}

	raw, err := json.Marshal(seedUsers)
	if err != nil {
		s.logger.Warn(ctx, "seed users: encode failed", "error", err)
		return
	}
	if err := s.store.Set(ctx, usersKey, raw); err != nil {
		s.logger.Warn(ctx, "seed users: write failed", "error", err)
		return
	}
	if err := s.store.Set(ctx, seededKey, []byte("true")); err != nil {
		s.logger.Warn(ctx, "seed users: write marker failed", "error", err)
	}
}

// Login matches id case-insensitively and the password exactly against the
// user collection. On success it persists a session snapshot of the matched
// record and returns it; otherwise common.ErrInvalidCredentials.
func (s *Store) Login(ctx context.Context, id, password string) (*models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if strings.EqualFold(u.ID, id) && u.Password == password {
			if err := s.writeSession(ctx, u); err != nil {
				return nil, err
			}
			out := u
			return &out, nil
		}
	}

	return nil, common.ErrInvalidCredentials
}

// CurrentUser returns the session snapshot, or (nil, nil) when no session is
// set. An unreadable snapshot is treated as absent, not as an error: the
// caller's recourse is a fresh login either way.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read session: %v", common.ErrStorageUnavailable, err)
	}
	if raw == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.logger.Warn(ctx, "session snapshot unreadable, treating as logged out", "error", err)
		return nil, nil
	}
	return &u, nil
}

// Logout clears the session snapshot. Idempotent.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("%w: clear session: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

// ReviewersByProgram filters the user collection to reviewers carrying the
// given program, in collection order.
func (s *Store) ReviewersByProgram(ctx context.Context, program models.Program) ([]models.User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.User, 0)
	for _, u := range users {
		if u.Role == models.RoleReviewer && u.Program == program {
			out = append(out, u)
		}
	}
	return out, nil
}

// AssignProgramAndReviewer enrolls a submitter into a program with the given
// reviewer. The reviewer must exist and carry the requested program. When the
// active session belongs to the mutated submitter, the snapshot is rewritten
// so it does not diverge from the collection.
func (s *Store) AssignProgramAndReviewer(ctx context.Context, submitterID string, program models.Program, reviewerID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, u := range users {
		if u.ID == submitterID && u.Role == models.RoleSubmitter {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, common.ErrSubmitterNotFound
	}

	var reviewer *models.User
	for i, u := range users {
		if u.ID == reviewerID && u.Role == models.RoleReviewer {
			reviewer = &users[i]
			break
		}
	}
	if reviewer == nil {
		return nil, common.ErrReviewerNotFound
	}
	if reviewer.Program != program {
		return nil, common.ErrProgramMismatch
	}

	users[idx].Program = program
	users[idx].AssignedReviewerID = reviewerID

	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}

	updated := users[idx]

	cur, err := s.CurrentUser(ctx)
	switch {
	case err != nil:
		s.logger.Warn(ctx, "session resync skipped: read session failed", "error", err)
	case cur != nil && strings.EqualFold(cur.ID, updated.ID):
		if err := s.writeSession(ctx, updated); err != nil {
			return nil, err
		}
	}

	return &updated, nil
}

func (s *Store) loadUsers(ctx context.Context) ([]models.User, error) {
	raw, err := s.store.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read users: %v", common.ErrStorageUnavailable, err)
	}
	if raw == nil {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: users payload: %v", common.ErrCorruptData, err)
	}
	return users, nil
}

func (s *Store) saveUsers(ctx context.Context, users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.store.Set(ctx, usersKey, raw); err != nil {
		return fmt.Errorf("%w: write users: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) writeSession(ctx context.Context, u models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("%w: write session: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}
