package repositories

import (
	"errors"
	"time"

	"hiretalent_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOfferNotFound = errors.New("offer not found")

type OfferRepository struct{}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{}
}

func (r *OfferRepository) Create(db *gorm.DB, offer *models.Offer) error {
	return db.Create(offer).Error
}

func (r *OfferRepository) FindByID(db *gorm.DB, id string) (*models.Offer, error) {
	var offer models.Offer
	err := db.Preload("Application").Preload("Job").First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) FindByApplication(db *gorm.DB, applicationID string) (*models.Offer, error) {
	var offer models.Offer
	err := db.Order("created_at DESC").First(&offer, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) Update(db *gorm.DB, offer *models.Offer) error {
	return db.Save(offer).Error
}

// UpdateStatusIf is the offer-side compare-and-swap: the row changes only if
// the status still matches what the caller read. Fields carries the rest of
// the write (response token, timestamps, negotiation columns).
func (r *OfferRepository) UpdateStatusIf(db *gorm.DB, id string, from, to models.OfferStatus, fields map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for k, v := range fields {
		updates[k] = v
	}
	result := db.Model(&models.Offer{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpireOverdue flips sent offers past their validity window to expired and
// clears the response token in one statement. Returns the affected IDs so the
// worker can mirror the change onto applications.
func (r *OfferRepository) ExpireOverdue(db *gorm.DB, now time.Time) ([]models.Offer, error) {
	var overdue []models.Offer
	err := db.Where("status = ? AND offer_valid_until < ?", models.OfferStatusSent, now).
		Find(&overdue).Error
	if err != nil {
		return nil, err
	}
	if len(overdue) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(overdue))
	for _, o := range overdue {
		ids = append(ids, o.ID)
	}
	err = db.Model(&models.Offer{}).
		Where("id IN ? AND status = ?", ids, models.OfferStatusSent).
		Updates(map[string]interface{}{
			"status":         models.OfferStatusExpired,
			"response_token": "",
		}).Error
	if err != nil {
		return nil, err
	}
	return overdue, nil
}
