package handler

import "github.com/lmt-transport/LMT-Driver-App/internal/service"

// Handler aggregates every HTTP handler for router wiring.
type Handler struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Job       *JobHandler
	Export    *ExportHandler
}

// NewHandler builds the handler aggregate over the service layer.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Job:       NewJobHandler(svc.Job),
		Export:    NewExportHandler(svc.Export),
	}
}
