// Package submissions owns the work-item collection and its status workflow.
// Authorization context (who is submitting, who may review) is resolved by
// callers through the identity store; this store only enforces record-level
// ownership checks.
package submissions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rpas/internal/common"
	"rpas/internal/kvstore"
	"rpas/internal/logging"
	"rpas/internal/models"
)

const submissionsKey = "rpas/submissions_v1"

// Params carries the caller-supplied fields of a submission. File references
// must already be materialized; the store never touches file content.
type Params struct {
	SubmitterID string
	ReviewerID  string
	Program     models.Program
	Description string
	Files       []models.FileRef
}

// Store persists submissions as one JSON array under a fixed key. Every
// mutation reads the whole collection, changes it in memory and writes it
// back, so mutations are serialized through a single mutex: without it an
// interleaved writer discards the other writer's records wholesale.
type Store struct {
	store  kvstore.Store
	logger logging.Logger
	mu     sync.Mutex
	now    func() time.Time
}

func NewStore(store kvstore.Store, logger logging.Logger) *Store {
	return &Store{store: store, logger: logger, now: time.Now}
}

// Create persists a new submission in submitted status, newest first. There
// is no path from draft to submitted; a final submission is always a fresh
// record.
func (s *Store) Create(ctx context.Context, p Params) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	sub := s.newSubmission(p, models.StatusSubmitted)
	all = append([]models.Submission{sub}, all...)

	if err := s.saveAll(ctx, all); err != nil {
		return nil, err
	}

	out := sub.Clone()
	return &out, nil
}

// SaveDraft upserts a draft. When existingID names a record owned by the same
// submitter, that record is overwritten in place (status forced back to
// draft, collection position and creation time unchanged). Otherwise a new
// draft is created, newest first.
func (s *Store) SaveDraft(ctx context.Context, p Params, existingID string) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	if existingID != "" {
		for i := range all {
			if all[i].ID == existingID && all[i].SubmitterID == p.SubmitterID {
				all[i].ReviewerID = p.ReviewerID
				all[i].Program = p.Program
				all[i].Description = p.Description
				all[i].Files = models.CloneFileRefs(p.Files)
				all[i].Status = models.StatusDraft

				if err := s.saveAll(ctx, all); err != nil {
					return nil, err
				}
				out := all[i].Clone()
				return &out, nil
			}
		}
		s.logger.Debug(ctx, "no matching draft for submitter, creating a new one",
			"id", existingID, "submitter", p.SubmitterID)
	}

	sub := s.newSubmission(p, models.StatusDraft)
	all = append([]models.Submission{sub}, all...)

	if err := s.saveAll(ctx, all); err != nil {
		return nil, err
	}

	out := sub.Clone()
	return &out, nil
}

// ForReviewer returns the submissions assigned to a reviewer, in collection
// order (reverse-chronological by creation, perturbed by in-place draft edits).
func (s *Store) ForReviewer(ctx context.Context, reviewerID string) ([]models.Submission, error) {
	return s.filter(ctx, func(sub models.Submission) bool {
		return sub.ReviewerID == reviewerID
	})
}

// ForSubmitter returns a submitter's own submissions, in collection order.
func (s *Store) ForSubmitter(ctx context.Context, submitterID string) ([]models.Submission, error) {
	return s.filter(ctx, func(sub models.Submission) bool {
		return sub.SubmitterID == submitterID
	})
}

// ByID returns the submission with the given id, or (nil, nil) when absent.
func (s *Store) ByID(ctx context.Context, id string) (*models.Submission, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, sub := range all {
		if sub.ID == id {
			out := sub.Clone()
			return &out, nil
		}
	}
	return nil, nil
}

// RecordReview stores a reviewer's decision on a submission. Only the record's
// assigned reviewer may review it. Re-invocable: a later call overwrites the
// earlier decision, comments and timestamp without trace.
func (s *Store) RecordReview(ctx context.Context, submissionID, reviewerID string, decision models.Decision, comments string) (*models.Submission, error) {
	if !decision.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidDecision, decision)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range all {
		if all[i].ID == submissionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, common.ErrSubmissionNotFound
	}
	if all[idx].ReviewerID != reviewerID {
		return nil, common.ErrNotAuthorized
	}

	reviewedAt := s.now().UTC()
	all[idx].Status = decision.Status()
	all[idx].ReviewDecision = decision
	all[idx].ReviewComments = comments
	all[idx].ReviewedAt = &reviewedAt

	if err := s.saveAll(ctx, all); err != nil {
		return nil, err
	}

	out := all[idx].Clone()
	return &out, nil
}

func (s *Store) newSubmission(p Params, status models.SubmissionStatus) models.Submission {
	return models.Submission{
		ID:          uuid.NewString(),
		SubmitterID: p.SubmitterID,
		ReviewerID:  p.ReviewerID,
		Program:     p.Program,
		Description: p.Description,
		Files:       models.CloneFileRefs(p.Files),
		Status:      status,
		CreatedAt:   s.now().UTC(),
	}
}

func (s *Store) filter(ctx context.Context, keep func(models.Submission) bool) ([]models.Submission, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Submission, 0)
	for _, sub := range all {
		if keep(sub) {
			out = append(out, sub.Clone())
		}
	}
	return out, nil
}

func (s *Store) loadAll(ctx context.Context) ([]models.Submission, error) {
	raw, err := s.store.Get(ctx, submissionsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: read submissions: %v", common.ErrStorageUnavailable, err)
	}
	if raw == nil {
		return []models.Submission{}, nil
	}

	var all []models.Submission
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("%w: submissions payload: %v", common.ErrCorruptData, err)
	}
	return all, nil
}

func (s *Store) saveAll(ctx context.Context, all []models.Submission) error {
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}
	if err := s.store.Set(ctx, submissionsKey, raw); err != nil {
		return fmt.Errorf("%w: write submissions: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}
