package service

import (
	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/config"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
)

// Service aggregates every service
type Service struct {
	Bootstrap    BootstrapService
	Project      ProjectService
	RawData      RawDataService
	Notification NotificationService
	Export       ExportService
}

// NewService wires the services onto the repository
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Bootstrap:    NewBootstrapService(&cfg.Board, repo, logger),
		Project:      NewProjectService(repo, logger),
		RawData:      NewRawDataService(repo, logger),
		Notification: NewNotificationService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
