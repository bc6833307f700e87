package dto

import "github.com/marvinpacsands/Project-List-Designers/internal/model"

// ── notifications ──

// NotificationListRequest GET /api/notifications query
type NotificationListRequest struct {
	Email string `form:"email"`
	Name  string `form:"name"`
}

// AckRequest POST /api/notifications/ack body
type AckRequest struct {
	ID    model.FlexString `json:"id"    binding:"required"`
	Email string           `json:"email" binding:"required"`
}
