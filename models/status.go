package models

// Status is the delivery state of a post.
//
// A post is created as scheduled and moves to sent or failed as the result
// of a delivery attempt. Both sent and failed are terminal; nothing ever
// transitions a post back to scheduled.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status can never change again.
func (s Status) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}
