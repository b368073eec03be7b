package models

import "time"

type Message struct {
	BaseModel
	SenderID    string `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID string `gorm:"type:uuid;not null;index" json:"recipient_id"`
	// ThreadID groups messages of one conversation. First message of a
	// thread gets a fresh UUID that replies reuse.
	ThreadID string `gorm:"type:uuid;not null;index" json:"thread_id"`

	Content string        `gorm:"type:text;not null" json:"content"`
	Status  MessageStatus `gorm:"type:varchar(10);default:'sent'" json:"status"`
	ReadAt  *time.Time    `json:"read_at,omitempty"`

	// Weak context references, never ownership.
	RelatedJobID         *string `gorm:"type:uuid" json:"related_job_id,omitempty"`
	RelatedApplicationID *string `gorm:"type:uuid" json:"related_application_id,omitempty"`
	RelatedInterviewID   *string `gorm:"type:uuid" json:"related_interview_id,omitempty"`

	// Relations
	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
