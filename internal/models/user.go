// Package models defines the persisted record types shared by the RPAS
// stores: users, the session snapshot, and submissions with their attached
// file references. JSON tags match the stored wire shapes.
package models

// Role classifies an identity record.
type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleReviewer  Role = "reviewer"
)

// Program is the categorical tag linking submitters to eligible reviewers.
type Program string

// User is an identity record. IDs are unique and matched case-insensitively
// on lookup. Passwords are opaque strings compared by exact match; hardening
// them is out of scope for this layer.
//
// Program is required and fixed for reviewers. For submitters both Program
// and AssignedReviewerID are set by the enrollment operation, which
// guarantees the referenced reviewer exists and carries the same program.
type User struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Role               Role    `json:"role"`
	Password           string  `json:"password"`
	Program            Program `json:"program,omitempty"`
	AssignedReviewerID string  `json:"assignedReviewerId,omitempty"`
}
