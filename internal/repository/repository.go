package repository

// Repository aggregates the data access layer
type Repository struct {
	Board Store
}

// NewRepository wraps the configured board store
func NewRepository(board Store) *Repository {
	return &Repository{Board: board}
}
