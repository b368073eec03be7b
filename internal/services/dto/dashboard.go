package dto

import "time"

// --- Dashboard Requests ---

// FunnelRequest narrows the funnel to applications submitted within the
// inclusive [from, to] range. Both bounds are optional.
type FunnelRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// --- Dashboard Responses ---

// FunnelStage is one step of the cumulative pipeline funnel: Count is the
// number of applications that have ever reached the stage, not the number
// sitting there now.
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

type DashboardResponse struct {
	OpenPositions       int64 `json:"open_positions"`
	NewApplicationsWeek int64 `json:"new_applications_week"`
	ScheduledInterviews int64 `json:"scheduled_interviews"`
	HiredThisMonth      int64 `json:"hired_this_month"`

	Funnel []FunnelStage `json:"funnel"`

	RecentApplications []ApplicationResponse `json:"recent_applications"`
}
