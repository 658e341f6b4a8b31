// Package common defines the sentinel errors shared by the RPAS stores.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Identity store errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSubmitterNotFound  = errors.New("submitter not found")
	ErrReviewerNotFound   = errors.New("reviewer not found")
	ErrProgramMismatch    = errors.New("reviewer program mismatch")

	// Submission store errors.
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidDecision    = errors.New("invalid review decision")

	// Backing store errors. ErrStorageUnavailable covers I/O failures of the
	// blob store; ErrCorruptData marks a persisted payload that no longer
	// decodes, so corruption surfaces instead of reading back as empty.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptData        = errors.New("corrupt data")
)
