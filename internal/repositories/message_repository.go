package repositories

import (
	"errors"
	"time"

	"hiretalent_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository struct{}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *MessageRepository) FindByID(db *gorm.DB, id string) (*models.Message, error) {
	var message models.Message
	err := db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) ListThread(db *gorm.DB, threadID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) ListInbox(db *gorm.DB, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) MarkRead(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.MessageStatusRead,
			"read_at": at,
		}).Error
}

func (r *MessageRepository) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("recipient_id = ? AND status <> ?", userID, models.MessageStatusRead).
		Count(&count).Error
	return count, err
}
