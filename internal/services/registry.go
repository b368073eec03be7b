package services

import (
	"hiretalent_backend/internal/config"
	"hiretalent_backend/internal/email"
	"hiretalent_backend/internal/repositories"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService        *AuthService
	JobService         *JobService
	ApplicationService *ApplicationService
	InterviewService   *InterviewService
	OfferService       *OfferService
	DashboardService   *DashboardService
	MessageService     *MessageService
	EmailProvider      email.Provider
}

// NewServiceContainer wires repositories into services. The email provider is
// injected so main can choose SMTP or the noop recorder.
func NewServiceContainer(cfg *config.Config, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	interviewRepo := repositories.NewInterviewRepository()
	offerRepo := repositories.NewOfferRepository()
	messageRepo := repositories.NewMessageRepository()
	dashboardRepo := repositories.NewDashboardRepository()

	applicationService := NewApplicationService(applicationRepo, jobRepo, userRepo, emailProvider)

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, refreshTokenRepo, cfg),
		JobService:         NewJobService(jobRepo),
		ApplicationService: applicationService,
		InterviewService:   NewInterviewService(interviewRepo, applicationRepo, applicationService, emailProvider),
		OfferService:       NewOfferService(offerRepo, applicationService, emailProvider, cfg),
		DashboardService:   NewDashboardService(dashboardRepo, applicationRepo, interviewRepo, cfg),
		MessageService:     NewMessageService(messageRepo, userRepo),
		EmailProvider:      emailProvider,
	}
}
