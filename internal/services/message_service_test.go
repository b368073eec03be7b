package services

import (
	"testing"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageThread(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)

	first, err := sc.MessageService.Send(db, recruiter, &dto.SendMessageRequest{
		RecipientID: candidate.ID,
		Content:     "Thanks for applying, are you free for a call?",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ThreadID)
	assert.Equal(t, models.MessageStatusSent, first.Status)

	reply, err := sc.MessageService.Send(db, candidate, &dto.SendMessageRequest{
		RecipientID: recruiter.ID,
		Content:     "Yes, tomorrow afternoon works.",
		ThreadID:    first.ThreadID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ThreadID, reply.ThreadID)

	thread, err := sc.MessageService.GetThread(db, recruiter, first.ThreadID)
	require.NoError(t, err)
	assert.Len(t, thread, 2)

	inbox, err := sc.MessageService.Inbox(db, candidate)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, first.ID, inbox[0].ID)
}

func TestMessageThreadAccess(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)
	stranger := createUser(t, db, "stranger@example.com", models.UserRoleCandidate)
	admin := createUser(t, db, "admin@example.com", models.UserRoleAdmin)

	first, err := sc.MessageService.Send(db, recruiter, &dto.SendMessageRequest{
		RecipientID: candidate.ID,
		Content:     "hello",
	})
	require.NoError(t, err)

	_, err = sc.MessageService.GetThread(db, stranger, first.ThreadID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	// Nor can outsiders graft replies onto the thread.
	_, err = sc.MessageService.Send(db, stranger, &dto.SendMessageRequest{
		RecipientID: candidate.ID,
		Content:     "let me in",
		ThreadID:    first.ThreadID,
	})
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	_, err = sc.MessageService.GetThread(db, admin, first.ThreadID)
	assert.NoError(t, err)
}

func TestMessageSendValidation(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)

	_, err := sc.MessageService.Send(db, recruiter, &dto.SendMessageRequest{
		RecipientID: recruiter.ID,
		Content:     "note to self",
	})
	assert.Error(t, err)

	_, err = sc.MessageService.Send(db, recruiter, &dto.SendMessageRequest{
		RecipientID: "11111111-1111-1111-1111-111111111111",
		Content:     "to nobody",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestMarkRead(t *testing.T) {
	t.Parallel()
	sc, _, db := newTestContainer(t)
	recruiter := createUser(t, db, "recruiter@example.com", models.UserRoleRecruiter)
	candidate := createUser(t, db, "candidate@example.com", models.UserRoleCandidate)

	msg, err := sc.MessageService.Send(db, recruiter, &dto.SendMessageRequest{
		RecipientID: candidate.ID,
		Content:     "hello",
	})
	require.NoError(t, err)

	// Only the recipient flips the flag.
	err = sc.MessageService.MarkRead(db, recruiter, msg.ID)
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	require.NoError(t, sc.MessageService.MarkRead(db, candidate, msg.ID))

	var stored models.Message
	require.NoError(t, db.First(&stored, "id = ?", msg.ID).Error)
	assert.Equal(t, models.MessageStatusRead, stored.Status)
	assert.NotNil(t, stored.ReadAt)

	// Idempotent.
	require.NoError(t, sc.MessageService.MarkRead(db, candidate, msg.ID))
}
