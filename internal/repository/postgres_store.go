package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	pkgerrors "github.com/marvinpacsands/Project-List-Designers/pkg/errors"
)

// PostgresStore keeps the board document in table board_documents, one jsonb
// row per collection. Update locks every row with SELECT ... FOR UPDATE inside
// a transaction, so concurrent writers (including other processes) serialize.
type PostgresStore struct {
	db     *gorm.DB
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// NewPostgresStore wraps an open gorm connection. The schema comes from the
// embedded migrations (database.RunMigrations).
func NewPostgresStore(db *gorm.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) View(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return pkgerrors.ErrStoreClosed
	}

	var rows []model.BoardDocument
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		s.logger.Error("load board failed", zap.Error(err))
		return err
	}
	doc, err := decodeRows(rows)
	if err != nil {
		return err
	}
	return fn(doc)
}

func (s *PostgresStore) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return pkgerrors.ErrStoreClosed
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.BoardDocument
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Find(&rows).Error; err != nil {
			return err
		}
		doc, err := decodeRows(rows)
		if err != nil {
			return err
		}
		before := make(map[string][]byte, len(rows))
		for _, r := range rows {
			before[r.Collection] = r.Body
		}

		if err := fn(doc); err != nil {
			return err
		}

		now := time.Now()
		for _, name := range model.Collections {
			body, err := json.Marshal(doc.CollectionRef(name))
			if err != nil {
				return fmt.Errorf("encode %s: %w", name, err)
			}
			if prev, ok := before[name]; ok && jsonEqual(prev, body) {
				continue
			}
			row := model.BoardDocument{Collection: name, Body: datatypes.JSON(body), UpdatedAt: now}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "collection"}},
				DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return fmt.Errorf("save %s: %w", name, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func decodeRows(rows []model.BoardDocument) (*model.Document, error) {
	doc := model.NewDocument()
	for _, r := range rows {
		target := doc.CollectionRef(r.Collection)
		if target == nil || len(r.Body) == 0 {
			continue
		}
		if err := json.Unmarshal(r.Body, target); err != nil {
			return nil, fmt.Errorf("%w: collection %s: %v", pkgerrors.ErrDocumentCorrupt, r.Collection, err)
		}
	}
	return doc, nil
}

// jsonEqual compares two JSON values ignoring the whitespace and key order
// Postgres applies when it normalizes jsonb.
func jsonEqual(a, b []byte) bool {
	if bytes.Equal(a, b) {
		return true
	}
	var va, vb any
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return false
	}
	ca, _ := json.Marshal(va)
	cb, _ := json.Marshal(vb)
	return bytes.Equal(ca, cb)
}
