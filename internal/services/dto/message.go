package dto

import (
	"time"

	"hiretalent_backend/internal/models"
)

// --- Message Requests ---

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
	Content     string `json:"content" validate:"required,max=5000"`
	ThreadID    string `json:"thread_id,omitempty" validate:"omitempty,uuid"`

	RelatedJobID         *string `json:"related_job_id,omitempty" validate:"omitempty,uuid"`
	RelatedApplicationID *string `json:"related_application_id,omitempty" validate:"omitempty,uuid"`
	RelatedInterviewID   *string `json:"related_interview_id,omitempty" validate:"omitempty,uuid"`
}

// --- Message Responses ---

type MessageResponse struct {
	ID          string               `json:"id"`
	SenderID    string               `json:"sender_id"`
	RecipientID string               `json:"recipient_id"`
	ThreadID    string               `json:"thread_id"`
	Content     string               `json:"content"`
	Status      models.MessageStatus `json:"status"`
	ReadAt      *time.Time           `json:"read_at,omitempty"`

	RelatedJobID         *string `json:"related_job_id,omitempty"`
	RelatedApplicationID *string `json:"related_application_id,omitempty"`
	RelatedInterviewID   *string `json:"related_interview_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func NewMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:                   m.ID,
		SenderID:             m.SenderID,
		RecipientID:          m.RecipientID,
		ThreadID:             m.ThreadID,
		Content:              m.Content,
		Status:               m.Status,
		ReadAt:               m.ReadAt,
		RelatedJobID:         m.RelatedJobID,
		RelatedApplicationID: m.RelatedApplicationID,
		RelatedInterviewID:   m.RelatedInterviewID,
		CreatedAt:            m.CreatedAt,
	}
}
