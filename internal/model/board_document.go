package model

import (
	"time"

	"gorm.io/datatypes"
)

// BoardDocument one collection of the board document (table board_documents).
// The Postgres store keeps each top-level collection as a jsonb row.
type BoardDocument struct {
	Collection string         `gorm:"primaryKey;type:varchar(32)" json:"collection"`
	Body       datatypes.JSON `gorm:"type:jsonb;not null" json:"body"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName maps to board_documents.
func (BoardDocument) TableName() string { return "board_documents" }
