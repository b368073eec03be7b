package workers

import (
	"context"
	"time"

	"hiretalent_backend/internal/logger"
	"hiretalent_backend/internal/services"

	"gorm.io/gorm"
)

// OfferWorker runs the time-based sweeps: sent offers past their validity
// window become expired, published jobs past their application deadline get
// paused.
type OfferWorker struct {
	db           *gorm.DB
	offerService *services.OfferService
	jobService   *services.JobService
	interval     time.Duration
}

func NewOfferWorker(db *gorm.DB, offerService *services.OfferService, jobService *services.JobService) *OfferWorker {
	return &OfferWorker{
		db:           db,
		offerService: offerService,
		jobService:   jobService,
		interval:     15 * time.Minute,
	}
}

func (w *OfferWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *OfferWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("offer worker stopped")
			return
		case <-ticker.C:
			w.Sweep(time.Now())
		}
	}
}

// Sweep executes one pass of both sweeps. Exposed so tests can invoke it
// without the ticker.
func (w *OfferWorker) Sweep(now time.Time) {
	expired, err := w.offerService.ExpireOverdue(w.db, now)
	logger.WorkerLog("offer_worker", "expire_overdue_offers", err)
	if expired > 0 {
		logger.Info("expired overdue offers", "count", expired)
	}

	paused, err := w.jobService.PauseExpired(w.db, now)
	logger.WorkerLog("offer_worker", "pause_expired_jobs", err)
	if paused > 0 {
		logger.Info("paused jobs past deadline", "count", paused)
	}
}
