package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/marvinpacsands/Project-List-Designers/internal/model"
	"github.com/marvinpacsands/Project-List-Designers/internal/repository"
)

// ── Mock Store ──

type mockStore struct {
	mu      sync.Mutex
	doc     *model.Document
	commits int
	failErr error // returned by Update after fn succeeds, simulating a write failure
}

func newMockStore(doc *model.Document) *mockStore {
	if doc == nil {
		doc = model.NewDocument()
	}
	return &mockStore{doc: doc}
}

func (m *mockStore) View(_ context.Context, fn func(doc *model.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.doc)
}

func (m *mockStore) Update(_ context.Context, fn func(doc *model.Document) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if m.failErr != nil {
		return m.failErr
	}
	m.doc = next
	m.commits++
	return nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) snapshot() *model.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Clone()
}

var errWriteFailed = errors.New("disk full")

func newTestRepo(doc *model.Document) (*repository.Repository, *mockStore) {
	store := newMockStore(doc)
	return repository.NewRepository(store), store
}

// ── fixtures ──

func fixedNow() time.Time { return time.Date(2026, 3, 4, 15, 4, 5, 0, time.UTC) }

func testBoard() *model.Document {
	doc := model.NewDocument()
	doc.Users = []model.User{
		{Name: "Bob", Email: "bob@example.com", Role: "PM"},
		{Name: "Alice", Email: "alice@example.com", Role: "DESIGNER"},
		{Name: "Carol", Email: "carol@example.com", Role: "Designer, PM"},
		{Name: "Olga", Email: "olga@example.com", Role: "OPERATIONAL"},
	}
	doc.Colors = map[string]string{"in progress": "#3b82f6"}
	doc.Projects = []model.Project{
		{
			RowIndex: 2, InternalID: "int-2", ProjectNumber: "P-100", ProjectName: "Harbor House",
			Status: "In Progress", PM: "Bob",
			Designer1: "Alice", Priority1: "",
			Designer2: "Carol", Priority2: "2",
		},
		{
			RowIndex: 3, InternalID: "int-3", ProjectNumber: "P-101", ProjectName: "Mill Lofts",
			Status: "In Progress", PM: "Carol",
			Designer1: "Alice", Priority1: "1",
		},
		{
			RowIndex: 4, InternalID: "int-4", ProjectNumber: "P-102", ProjectName: "Old Depot",
			Status: "Abandoned", PM: "Unassigned",
			Designer1: "Carol", Priority1: "3",
		},
		{
			RowIndex: 5, InternalID: "int-5", ProjectNumber: "P-103", ProjectName: "Quay Offices",
			Status: "Design", PM: "",
		},
	}
	doc.Meta.LastRowIndex = 5
	return doc
}
