package services

import (
	"errors"
	"time"

	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/repositories"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageService struct {
	messageRepo *repositories.MessageRepository
	userRepo    *repositories.UserRepository
}

func NewMessageService(
	messageRepo *repositories.MessageRepository,
	userRepo *repositories.UserRepository,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// Message Operations

func (s *MessageService) Send(db *gorm.DB, actor *models.User, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	if req.RecipientID == actor.ID {
		return nil, apperrors.NewBadRequestError("cannot send a message to yourself")
	}

	if _, err := s.userRepo.FindByID(db, req.RecipientID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	} else {
		// Replies must stay inside a thread the actor participates in.
		thread, err := s.messageRepo.ListThread(db, threadID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if len(thread) == 0 {
			return nil, apperrors.NewBadRequestError("thread does not exist")
		}
		if !threadParticipant(thread, actor.ID) && actor.Role != models.UserRoleAdmin {
			return nil, apperrors.ErrAccessDenied
		}
	}

	message := &models.Message{
		SenderID:             actor.ID,
		RecipientID:          req.RecipientID,
		ThreadID:             threadID,
		Content:              req.Content,
		Status:               models.MessageStatusSent,
		RelatedJobID:         req.RelatedJobID,
		RelatedApplicationID: req.RelatedApplicationID,
		RelatedInterviewID:   req.RelatedInterviewID,
	}

	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewMessageResponse(message)
	return &resp, nil
}

func (s *MessageService) GetThread(db *gorm.DB, actor *models.User, threadID string) ([]dto.MessageResponse, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}

	messages, err := s.messageRepo.ListThread(db, threadID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(messages) == 0 {
		return nil, apperrors.ErrNotFound(repositories.ErrMessageNotFound)
	}
	if !threadParticipant(messages, actor.ID) && actor.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrAccessDenied
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, dto.NewMessageResponse(&messages[i]))
	}
	return out, nil
}

func (s *MessageService) Inbox(db *gorm.DB, actor *models.User) ([]dto.MessageResponse, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}

	messages, err := s.messageRepo.ListInbox(db, actor.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, dto.NewMessageResponse(&messages[i]))
	}
	return out, nil
}

// MarkRead flags a message as read. Only the recipient may do so.
func (s *MessageService) MarkRead(db *gorm.DB, actor *models.User, messageID string) error {
	if actor == nil {
		return apperrors.NewUnauthorizedError("User not authenticated")
	}

	message, err := s.messageRepo.FindByID(db, messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if message.RecipientID != actor.ID && actor.Role != models.UserRoleAdmin {
		return apperrors.ErrAccessDenied
	}
	if message.Status == models.MessageStatusRead {
		return nil
	}

	if err := s.messageRepo.MarkRead(db, messageID, time.Now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func threadParticipant(messages []models.Message, userID string) bool {
	for i := range messages {
		if messages[i].SenderID == userID || messages[i].RecipientID == userID {
			return true
		}
	}
	return false
}
