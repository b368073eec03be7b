package handlers

import (
	"hiretalent_backend/internal/services"
	"hiretalent_backend/internal/validator"
)

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	InterviewHandler   *InterviewHandler
	OfferHandler       *OfferHandler
	DashboardHandler   *DashboardHandler
	MessageHandler     *MessageHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, sc.AuthService),
		JobHandler:         NewJobHandler(base, sc.JobService, sc.DashboardService),
		ApplicationHandler: NewApplicationHandler(base, sc.ApplicationService, sc.InterviewService),
		InterviewHandler:   NewInterviewHandler(base, sc.InterviewService),
		OfferHandler:       NewOfferHandler(base, sc.OfferService),
		DashboardHandler:   NewDashboardHandler(base, sc.DashboardService, sc.InterviewService),
		MessageHandler:     NewMessageHandler(base, sc.MessageService),
	}
}
