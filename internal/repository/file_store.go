package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	pkgerrors "github.com/marvinpacsands/Project-List-Designers/pkg/errors"
)

// FileStore keeps the board document in one JSON file.
// The decoded document is cached; writes go to a temp file that is renamed
// over the previous file, so readers of the file never see a partial write.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu     sync.RWMutex
	doc    *model.Document
	closed bool
}

// NewFileStore opens (or starts) the document at path.
// A missing file yields an empty board that is created on the first Update.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{path: path, logger: logger}

	doc, err := readDocumentFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("board file not found, starting empty", zap.String("path", path))
		doc = model.NewDocument()
	case err != nil:
		return nil, err
	}
	s.doc = doc

	logger.Info("board file loaded",
		zap.String("path", path),
		zap.Int("projects", len(doc.Projects)),
		zap.Int("notifications", len(doc.Notifications)),
	)
	return s, nil
}

func (s *FileStore) View(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return pkgerrors.ErrStoreClosed
	}
	return fn(s.doc)
}

func (s *FileStore) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return pkgerrors.ErrStoreClosed
	}

	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := writeDocumentFile(s.path, next); err != nil {
		s.logger.Error("write board file failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.doc = next
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func readDocumentFile(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := model.NewDocument()
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pkgerrors.ErrDocumentCorrupt, path, err)
	}
	return doc, nil
}

func writeDocumentFile(path string, doc *model.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".board-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode board: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace board file: %w", err)
	}
	return nil
}
