package services

import (
	"context"
	"time"

	"hiretalent_backend/internal/config"
	"hiretalent_backend/internal/models"
	"hiretalent_backend/internal/repositories"
	"hiretalent_backend/internal/services/dto"
	"hiretalent_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// funnelStages is the left-to-right order of the hiring funnel. Counts are
// cumulative: each stage counts applications that have EVER reached it, so
// the series is monotonically non-increasing.
var funnelStages = []models.ApplicationStatus{
	models.ApplicationStatusNew,
	models.ApplicationStatusReviewing,
	models.ApplicationStatusShortlisted,
	models.ApplicationStatusInterviewing,
	models.ApplicationStatusInterviewed,
	models.ApplicationStatusOffer,
	models.ApplicationStatusHired,
}

type DashboardService struct {
	dashboardRepo   *repositories.DashboardRepository
	applicationRepo *repositories.ApplicationRepository
	interviewRepo   *repositories.InterviewRepository
	cfg             *config.Config
}

func NewDashboardService(
	dashboardRepo *repositories.DashboardRepository,
	applicationRepo *repositories.ApplicationRepository,
	interviewRepo *repositories.InterviewRepository,
	cfg *config.Config,
) *DashboardService {
	return &DashboardService{
		dashboardRepo:   dashboardRepo,
		applicationRepo: applicationRepo,
		interviewRepo:   interviewRepo,
		cfg:             cfg,
	}
}

// GetStats assembles the recruiter dashboard. The four headline counts run in
// parallel; all are scoped to the actor's own jobs (admins see everything).
func (s *DashboardService) GetStats(ctx context.Context, db *gorm.DB, actor *models.User) (*dto.DashboardResponse, error) {
	jobIDs, err := s.scopeJobIDs(db, actor)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(s.cfg.Server.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	weekAgo := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	resp := &dto.DashboardResponse{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.dashboardRepo.CountOpenPositions(db, jobIDs)
		resp.OpenPositions = count
		return err
	})
	g.Go(func() error {
		count, err := s.dashboardRepo.CountApplicationsSince(db, jobIDs, weekAgo)
		resp.NewApplicationsWeek = count
		return err
	})
	g.Go(func() error {
		count, err := s.interviewRepo.CountScheduled(db, actor.ID, now)
		resp.ScheduledInterviews = count
		return err
	})
	g.Go(func() error {
		count, err := s.dashboardRepo.CountHiredSince(db, jobIDs, monthStart)
		resp.HiredThisMonth = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	funnel, err := s.funnel(db, jobIDs, nil, nil)
	if err != nil {
		return nil, err
	}
	resp.Funnel = funnel

	recent, err := s.recentApplications(db, jobIDs, 10)
	if err != nil {
		return nil, err
	}
	resp.RecentApplications = recent

	return resp, nil
}

// GetFunnel returns the cumulative pipeline funnel, optionally narrowed to a
// single job the actor owns and to applications submitted within [since, until].
func (s *DashboardService) GetFunnel(db *gorm.DB, actor *models.User, jobID string, since, until *time.Time) ([]dto.FunnelStage, error) {
	jobIDs, err := s.scopeJobIDs(db, actor)
	if err != nil {
		return nil, err
	}

	if since != nil && until != nil && until.Before(*since) {
		return nil, apperrors.NewBadRequestError("Date range end is before its start")
	}

	if jobID != "" {
		found := false
		for _, id := range jobIDs {
			if id == jobID {
				found = true
				break
			}
		}
		if !found {
			return nil, apperrors.ErrAccessDenied
		}
		jobIDs = []string{jobID}
	}

	return s.funnel(db, jobIDs, since, until)
}

func (s *DashboardService) RecentApplications(db *gorm.DB, actor *models.User, limit int) ([]dto.ApplicationResponse, error) {
	jobIDs, err := s.scopeJobIDs(db, actor)
	if err != nil {
		return nil, err
	}
	return s.recentApplications(db, jobIDs, limit)
}

func (s *DashboardService) funnel(db *gorm.DB, jobIDs []string, since, until *time.Time) ([]dto.FunnelStage, error) {
	counts, err := s.dashboardRepo.FunnelCounts(db, jobIDs, funnelStages, since, until)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.FunnelStage, 0, len(funnelStages))
	for _, stage := range funnelStages {
		out = append(out, dto.FunnelStage{
			Stage: string(stage),
			Count: counts[stage],
		})
	}
	return out, nil
}

func (s *DashboardService) recentApplications(db *gorm.DB, jobIDs []string, limit int) ([]dto.ApplicationResponse, error) {
	apps, err := s.applicationRepo.ListRecent(db, jobIDs, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildApplicationResponses(apps)
}

func (s *DashboardService) scopeJobIDs(db *gorm.DB, actor *models.User) ([]string, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	switch actor.Role {
	case models.UserRoleAdmin:
		ids, err := s.dashboardRepo.AllJobIDs(db)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return ids, nil
	case models.UserRoleRecruiter:
		ids, err := s.dashboardRepo.OwnedJobIDs(db, actor.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		return ids, nil
	default:
		return nil, apperrors.ErrAccessDenied
	}
}
