package repository

import (
	"context"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
)

// Store persists the board document.
//
// View runs fn against the current document; fn must not modify it.
// Update runs fn against a private copy and commits the copy only when fn
// returns nil, so a failed mutation leaves the stored state untouched.
// Updates are serialized.
type Store interface {
	View(ctx context.Context, fn func(doc *model.Document) error) error
	Update(ctx context.Context, fn func(doc *model.Document) error) error
	Close() error
}
