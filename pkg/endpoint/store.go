package endpoint

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store provides database operations for named endpoints.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the endpoints table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&Endpoint{})
}

// List returns endpoints sorted by label. Test-only endpoints are excluded
// unless includeTestOnly is set (dev/sandbox contexts).
func (s *Store) List(includeTestOnly bool) ([]Endpoint, error) {
	query := s.db.Order("label ASC")
	if !includeTestOnly {
		query = query.Where("test_only = ?", false)
	}

	var endpoints []Endpoint
	if err := query.Find(&endpoints).Error; err != nil {
		return nil, fmt.Errorf("list endpoints: %w", err)
	}
	return endpoints, nil
}

// GetByName retrieves an endpoint by name. Returns nil when no endpoint
// with that name exists.
func (s *Store) GetByName(name string) (*Endpoint, error) {
	var ep Endpoint
	if err := s.db.First(&ep, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get endpoint %q: %w", name, err)
	}
	return &ep, nil
}
