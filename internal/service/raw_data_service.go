package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/notify"
	"github.com/marvinpacsands/Project-List-Designers/internal/priority"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
	"github.com/marvinpacsands/Project-List-Designers/pkg/metrics"
)

// ── raw data errors ──

var (
	ErrInvalidDocument = errors.New("invalid document: projects list is required")
)

// RawDataService whole-document access for the data editor
type RawDataService interface {
	// GetRaw returns a copy of the whole board document
	GetRaw(ctx context.Context) (*model.Document, error)
	// ReplaceRaw bulk-replaces the project list, notifying every change and
	// rebalancing priorities. The notification log is preserved.
	ReplaceRaw(ctx context.Context, req *dto.RawDataRequest) (*dto.RawDataResponse, error)
	// Rebalance recompacts every designer's ranking in the stored document
	Rebalance(ctx context.Context) (priority.Result, error)
}

type rawDataService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRawDataService creates a RawDataService
func NewRawDataService(repo *repository.Repository, logger *zap.Logger) RawDataService {
	return &rawDataService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── GetRaw ──────────────────────

func (s *rawDataService) GetRaw(ctx context.Context) (*model.Document, error) {
	var doc *model.Document
	err := s.repo.Board.View(ctx, func(d *model.Document) error {
		doc = d.Clone()
		return nil
	})
	if err != nil {
		s.logger.Error("load raw data failed", zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// ═══════════════════════════════════════════════════════════
// ReplaceRaw: bulk replace from the data editor
// ═══════════════════════════════════════════════════════════
//
// Every incoming project that pairs with a stored one (internalId, else id)
// is diffed with the full rule table. The editor is the incoming record's
// lastModified.by, so self-suppression runs per project while celebration
// supersession runs once over the whole save. New and removed projects
// produce no events. Diffing sees the submitted priorities; the
// rebalancer runs afterwards on the list that gets stored.

func (s *rawDataService) ReplaceRaw(ctx context.Context, req *dto.RawDataRequest) (*dto.RawDataResponse, error) {
	if req.Projects == nil {
		return nil, ErrInvalidDocument
	}

	now := s.now()
	var (
		added     []model.Notification
		rebalance priority.Result
	)

	err := s.repo.Board.Update(ctx, func(doc *model.Document) error {
		oldByKey := make(map[string]model.Project, len(doc.Projects))
		for _, p := range doc.Projects {
			if key := p.DiffKey(); key != "" {
				oldByKey[key] = p
			}
		}

		projects := make([]model.Project, len(req.Projects))
		var events []model.Notification
		for i := range req.Projects {
			projects[i] = req.Projects[i].Clone()
			np := projects[i]
			key := np.DiffKey()
			if key == "" {
				continue
			}
			op, ok := oldByKey[key]
			if !ok {
				continue
			}
			editor := np.Editor()
			events = append(events, notify.SuppressSelf(notify.Diff(op, np, editor, notify.ScopeBulk), editor)...)
		}
		events = notify.Supersede(events)

		rebalance = priority.Rebalance(projects)

		doc.Projects = projects
		doc.AssignRowIndexes()
		if req.Users != nil {
			doc.Users = req.Users
		}
		if req.Colors != nil {
			doc.Colors = req.Colors
		}
		if req.Config != nil {
			doc.Config = *req.Config
		}

		var err error
		added, err = commitNotifications(doc, events, now)
		return err
	})
	if err != nil {
		s.logger.Error("replace raw data failed", zap.Error(err))
		return nil, err
	}

	recordNotifications(notify.ScopeBulk, added)
	metrics.RebalanceRewrites.Add(float64(rebalance.Rewritten))
	s.logger.Info("raw data replaced",
		zap.Int("projects", len(req.Projects)),
		zap.Int("notifications", len(added)),
		zap.Int("rebalanced", rebalance.Rewritten),
		zap.Int("cleared_inactive", rebalance.Cleared),
	)

	return &dto.RawDataResponse{
		Success:         true,
		Count:           len(req.Projects),
		NotifsGenerated: len(added),
		Rebalanced:      rebalance.Rewritten,
	}, nil
}

// ────────────────────── Rebalance ──────────────────────

func (s *rawDataService) Rebalance(ctx context.Context) (priority.Result, error) {
	var res priority.Result
	err := s.repo.Board.Update(ctx, func(doc *model.Document) error {
		res = priority.Rebalance(doc.Projects)
		if res.Rewritten == 0 && res.Cleared == 0 {
			return errNoChange
		}
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		s.logger.Error("rebalance failed", zap.Error(err))
		return priority.Result{}, err
	}

	metrics.RebalanceRewrites.Add(float64(res.Rewritten))
	s.logger.Info("priorities rebalanced",
		zap.Int("designers", res.Designers),
		zap.Int("rewritten", res.Rewritten),
		zap.Int("cleared_inactive", res.Cleared),
	)
	return res, nil
}
