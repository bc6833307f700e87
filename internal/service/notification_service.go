package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/notify"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
	"github.com/marvinpacsands/Project-List-Designers/pkg/metrics"
)

// errNoChange aborts a store update that turned out to be a no-op.
var errNoChange = errors.New("no change")

// NotificationService delivery side of the notification log
type NotificationService interface {
	// ListUnread returns the events addressed to the identity that it has not
	// acknowledged yet, newest first.
	ListUnread(ctx context.Context, email, name string) ([]model.Notification, error)
	// Acknowledge records identity in the event's readBy. Unknown ids succeed silently.
	Acknowledge(ctx context.Context, id, identity string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService creates a NotificationService
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// ────────────────────── ListUnread ──────────────────────

func (s *notificationService) ListUnread(ctx context.Context, email, name string) ([]model.Notification, error) {
	email, name = model.Normalize(email), model.Normalize(name)
	result := make([]model.Notification, 0)

	err := s.repo.Board.View(ctx, func(doc *model.Document) error {
		for i := range doc.Notifications {
			n := &doc.Notifications[i]
			if !addressedTo(n, email, name) || n.IsReadBy(email, name) {
				continue
			}
			result = append(result, n.Clone())
		}
		return nil
	})
	if err != nil {
		s.logger.Error("list notifications failed", zap.Error(err))
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt > result[j].CreatedAt
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// addressedTo matches targetName against the normalized email or name.
// ANY events without a target are broadcasts.
func addressedTo(n *model.Notification, email, name string) bool {
	target := model.Normalize(n.TargetName)
	matches := target != "" && (target == email || target == name)
	switch n.TargetRole {
	case model.TargetAny:
		return target == "" || matches
	case model.TargetPM, model.TargetDesigner:
		return matches
	}
	return false
}

// ────────────────────── Acknowledge ──────────────────────

func (s *notificationService) Acknowledge(ctx context.Context, id, identity string) error {
	id = strings.TrimSpace(id)
	identity = strings.TrimSpace(identity)

	err := s.repo.Board.Update(ctx, func(doc *model.Document) error {
		n := doc.FindNotification(id)
		if n == nil || n.IsReadBy(identity) {
			return errNoChange
		}
		n.ReadBy = append(n.ReadBy, identity)
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		s.logger.Error("acknowledge notification failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

// commitNotifications stamps surviving events with ids and a timestamp and
// appends them to the log. The log is append-only: existing entries are never
// rewritten here.
func commitNotifications(doc *model.Document, events []model.Notification, now time.Time) ([]model.Notification, error) {
	if len(events) == 0 {
		return nil, nil
	}
	added := make([]model.Notification, 0, len(events))
	for _, e := range events {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}
		e.ID = model.FlexString(id.String())
		e.CreatedAt = now.UnixMilli()
		e.ReadBy = []string{}
		added = append(added, e)
	}
	doc.Notifications = append(doc.Notifications, added...)
	return added, nil
}

func recordNotifications(scope notify.Scope, added []model.Notification) {
	for _, n := range added {
		metrics.NotificationsTotal.WithLabelValues(scope.Name, n.Title).Inc()
	}
}
