package feedback

import (
	"testing"

	"bid-agent-be/internal/repository/memory"
	"bid-agent-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func newSessionWithDraft(t *testing.T, repo *memory.SessionRepository) *store.Session {
	t.Helper()
	sess, err := repo.Create("raw plan", "plan.txt", "")
	assert.NoError(t, err)

	sess.GeneratedDocument = "# Draft announcement"
	sess.TransitionTo(store.StepValidate)
	assert.NoError(t, repo.Save(sess))
	return sess
}

func TestSubmitUnknownSession(t *testing.T) {
	h := NewHandler(memory.NewSessionRepository())

	_, err := h.Submit(Submission{SessionID: "missing", Type: store.FeedbackApprove})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmitApprove(t *testing.T) {
	repo := memory.NewSessionRepository()
	sess := newSessionWithDraft(t, repo)
	h := NewHandler(repo)

	status, err := h.Submit(Submission{
		SessionID: sess.ID,
		Type:      store.FeedbackApprove,
		Comments:  "looks right",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	saved, _ := repo.Get(sess.ID)
	assert.Equal(t, store.StepComplete, saved.Step)
	assert.Equal(t, "# Draft announcement", saved.GeneratedDocument)
	assert.NotNil(t, saved.UserFeedback)
	assert.Equal(t, store.FeedbackApprove, saved.UserFeedback.Type)
	assert.Equal(t, "looks right", saved.UserFeedback.Comments)
}

func TestSubmitApproveWithoutDraft(t *testing.T) {
	repo := memory.NewSessionRepository()
	sess, _ := repo.Create("raw plan", "", "")
	h := NewHandler(repo)

	_, err := h.Submit(Submission{SessionID: sess.ID, Type: store.FeedbackApprove})
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestSubmitReject(t *testing.T) {
	repo := memory.NewSessionRepository()
	sess := newSessionWithDraft(t, repo)
	h := NewHandler(repo)

	status, err := h.Submit(Submission{
		SessionID: sess.ID,
		Type:      store.FeedbackReject,
		Comments:  "wrong award method",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusRejected, status)

	saved, _ := repo.Get(sess.ID)
	assert.Equal(t, store.StepValidate, saved.Step, "reject records the decision, the pipeline position stands")
	assert.Equal(t, store.FeedbackReject, saved.UserFeedback.Type)
}

func TestSubmitModify(t *testing.T) {
	repo := memory.NewSessionRepository()
	sess := newSessionWithDraft(t, repo)
	h := NewHandler(repo)

	status, err := h.Submit(Submission{
		SessionID:       sess.ID,
		Type:            store.FeedbackModify,
		ModifiedContent: "# Corrected announcement",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusModified, status)

	saved, _ := repo.Get(sess.ID)
	assert.Equal(t, store.StepComplete, saved.Step)
	assert.Equal(t, "# Corrected announcement", saved.GeneratedDocument)
	assert.Equal(t, "# Corrected announcement", saved.UserFeedback.ModifiedContent)
}

func TestSubmitModifyWithoutContent(t *testing.T) {
	repo := memory.NewSessionRepository()
	sess := newSessionWithDraft(t, repo)
	h := NewHandler(repo)

	_, err := h.Submit(Submission{SessionID: sess.ID, Type: store.FeedbackModify})
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestSubmitUnknownType(t *testing.T) {
	repo := memory.NewSessionRepository()
	sess := newSessionWithDraft(t, repo)
	h := NewHandler(repo)

	_, err := h.Submit(Submission{SessionID: sess.ID, Type: "escalate"})
	assert.ErrorIs(t, err, ErrInvalidFeedback)

	saved, _ := repo.Get(sess.ID)
	assert.Nil(t, saved.UserFeedback, "invalid submissions leave the session untouched")
}
