package models

import "time"

// SubmissionStatus enumerates the submission workflow states. A record is
// created as either draft or submitted; review decisions move a submitted
// record to approved or changes_requested, and a later review may move it
// between those two again. Drafts have no outgoing transition.
type SubmissionStatus string

const (
	StatusDraft            SubmissionStatus = "draft"
	StatusSubmitted        SubmissionStatus = "submitted"
	StatusApproved         SubmissionStatus = "approved"
	StatusChangesRequested SubmissionStatus = "changes_requested"
)

// Decision is a reviewer's verdict on a submission.
type Decision string

const (
	DecisionApproved         Decision = "approved"
	DecisionChangesRequested Decision = "changes_requested"
)

// Valid reports whether d is one of the two known decisions.
func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionChangesRequested
}

// Status returns the submission status a decision maps to.
func (d Decision) Status() SubmissionStatus {
	return SubmissionStatus(d)
}

// FileRef points at a materialized copy of an attached document. Locator is
// the stable path produced by the file store; Size and MimeType are whatever
// the document picker reported and may be absent.
type FileRef struct {
	Name     string `json:"name"`
	Size     *int64 `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Locator  string `json:"locator,omitempty"`
}

// Submission is a work item exchanged between a submitter and a reviewer.
// ReviewDecision, ReviewComments and ReviewedAt are set together by the
// review operation; ReviewedAt is present iff ReviewDecision is.
type Submission struct {
	ID             string           `json:"id"`
	SubmitterID    string           `json:"submitterId"`
	ReviewerID     string           `json:"reviewerId"`
	Program        Program          `json:"program"`
	Description    string           `json:"description"`
	Files          []FileRef        `json:"files"`
	Status         SubmissionStatus `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	ReviewDecision Decision         `json:"reviewDecision,omitempty"`
	ReviewComments string           `json:"reviewComments,omitempty"`
	ReviewedAt     *time.Time       `json:"reviewedAt,omitempty"`
}

// Clone returns a deep copy of the file reference.
func (f FileRef) Clone() FileRef {
	out := f
	if f.Size != nil {
		n := *f.Size
		out.Size = &n
	}
	return out
}

// CloneFileRefs deep-copies a file reference slice, preserving order. The
// result is never nil so the stored JSON keeps an explicit files array.
func CloneFileRefs(files []FileRef) []FileRef {
	out := make([]FileRef, len(files))
	for i, f := range files {
		out[i] = f.Clone()
	}
	return out
}

// Clone returns a deep copy so callers cannot mutate store-internal state
// through the Files slice or the ReviewedAt pointer.
func (s Submission) Clone() Submission {
	out := s
	out.Files = CloneFileRefs(s.Files)
	if s.ReviewedAt != nil {
		t := *s.ReviewedAt
		out.ReviewedAt = &t
	}
	return out
}
