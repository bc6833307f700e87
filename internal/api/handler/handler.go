package handler

import "github.com/marvinpacsands/Project-List-Designers/internal/service"

// Handler aggregates every HTTP handler
type Handler struct {
	Bootstrap    *BootstrapHandler
	Project      *ProjectHandler
	RawData      *RawDataHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler wires the handlers onto the services
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Bootstrap:    NewBootstrapHandler(svc.Bootstrap),
		Project:      NewProjectHandler(svc.Project),
		RawData:      NewRawDataHandler(svc.RawData),
		Notification: NewNotificationHandler(svc.Notification),
		Export:       NewExportHandler(svc.Export),
	}
}
