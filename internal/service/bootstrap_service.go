package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/config"
	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
)

// ── user errors ──

var (
	ErrUserNotFound = errors.New("user not found")
)

// BootstrapService resolves the client identity and static options
type BootstrapService interface {
	Bootstrap(ctx context.Context, email string) (*dto.BootstrapResponse, error)
}

type bootstrapService struct {
	cfg    *config.BoardConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBootstrapService creates a BootstrapService
func NewBootstrapService(cfg *config.BoardConfig, repo *repository.Repository, logger *zap.Logger) BootstrapService {
	return &bootstrapService{cfg: cfg, repo: repo, logger: logger}
}

func (s *bootstrapService) Bootstrap(ctx context.Context, email string) (*dto.BootstrapResponse, error) {
	var resp *dto.BootstrapResponse

	err := s.repo.Board.View(ctx, func(doc *model.Document) error {
		user := doc.FindUser(email)
		if user == nil {
			return ErrUserNotFound
		}

		roles := user.Roles()
		if roles == nil {
			roles = []string{}
		}
		options := doc.Config.PriorityOptions
		if len(options) == 0 {
			options = model.DefaultPriorityOptions
		}
		colors := make(map[string]string, len(doc.Colors))
		for k, v := range doc.Colors {
			colors[k] = v
		}

		resp = &dto.BootstrapResponse{
			Email:           user.Email,
			Name:            user.Name,
			Roles:           roles,
			IsPM:            user.HasRole(model.RolePM),
			IsOps:           user.HasRole(model.RoleOperational),
			PriorityOptions: append([]string(nil), options...),
			PhaseColors:     colors,
			LogoURL:         s.cfg.LogoURL,
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.Error("bootstrap failed", zap.Error(err))
		}
		return nil, err
	}
	return resp, nil
}
