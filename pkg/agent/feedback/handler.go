// Package feedback applies the reviewer's terminal decision to a session,
// independent of the run loop.
package feedback

import (
	"errors"
	"fmt"
	"time"

	"bid-agent-be/pkg/store"
)

// ErrInvalidFeedback marks a malformed submission; the session is left
// untouched.
var ErrInvalidFeedback = errors.New("invalid feedback")

// Statuses returned to the caller.
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusModified = "modified"
)

// Submission is one reviewer decision.
type Submission struct {
	SessionID       string
	Type            string
	Comments        string
	ModifiedContent string
}

// Handler records feedback against stored sessions.
type Handler struct {
	sessions store.SessionStore
}

func NewHandler(sessions store.SessionStore) *Handler {
	return &Handler{sessions: sessions}
}

// Submit validates and applies the decision. Approve requires an existing
// draft; modify additionally requires replacement content, which overwrites
// the draft. Reject records the decision and leaves the session otherwise
// unchanged.
func (h *Handler) Submit(sub Submission) (string, error) {
	if !h.sessions.Exists(sub.SessionID) {
		return "", store.ErrNotFound
	}
	unlock := h.sessions.Lock(sub.SessionID)
	defer unlock()

	sess, err := h.sessions.Get(sub.SessionID)
	if err != nil {
		return "", err
	}

	var status string
	switch sub.Type {
	case store.FeedbackApprove:
		if !sess.HasDocument() {
			return "", fmt.Errorf("%w: no generated document to approve", ErrInvalidFeedback)
		}
		sess.TransitionTo(store.StepComplete)
		status = StatusApproved

	case store.FeedbackReject:
		status = StatusRejected

	case store.FeedbackModify:
		if sub.ModifiedContent == "" {
			return "", fmt.Errorf("%w: modify requires modified_content", ErrInvalidFeedback)
		}
		if !sess.HasDocument() {
			return "", fmt.Errorf("%w: no generated document to modify", ErrInvalidFeedback)
		}
		sess.GeneratedDocument = sub.ModifiedContent
		sess.TransitionTo(store.StepComplete)
		status = StatusModified

	default:
		return "", fmt.Errorf("%w: unknown feedback type %q", ErrInvalidFeedback, sub.Type)
	}

	sess.UserFeedback = &store.UserFeedback{
		Type:            sub.Type,
		Comments:        sub.Comments,
		ModifiedContent: sub.ModifiedContent,
		SubmittedAt:     time.Now(),
	}
	sess.UpdatedAt = time.Now()

	if err := h.sessions.Save(sess); err != nil {
		return "", err
	}
	return status, nil
}
