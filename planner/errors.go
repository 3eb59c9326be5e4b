package planner

import "fmt"

// The error taxonomy is small and every failure is local to the operation
// that produced it: the manager reports and lets the caller decide, with no
// silent retry and no backoff.

// ValidationError means a required field was missing or invalid. It is
// raised before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UploadError means the image upload step failed; the dependent create or
// update was not attempted.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "image upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// RemoteError means the backend rejected the call or was unreachable.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *RemoteError) Unwrap() error { return e.Err }

// NotFoundError means the target post no longer exists on the backend.
type NotFoundError struct {
	PostID string
}

func (e *NotFoundError) Error() string { return "post " + e.PostID + " not found" }
