// Package categories orchestrates the content gateway to produce,
// id-stamp, and de-duplicate category and subcategory lists. Categories
// are transient: nothing here touches the database.
package categories

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/quizwhiz/backend/internal/models"
)

// contentGateway is the slice of the generator the service needs.
type contentGateway interface {
	GenerateCategories(ctx context.Context, existingTitles []string, cached [][2]string) ([]models.Category, error)
	SearchCategories(ctx context.Context, search string, existingTitles []string, cached [][2]string) ([]models.Category, error)
	GenerateSubcategories(ctx context.Context, category string, existing []string) ([]models.Subcategory, error)
	SearchSubcategories(ctx context.Context, categoryTitle, search string, existing []string) ([]models.Subcategory, error)
}

type Service struct {
	gateway contentGateway

	// id-reuse map, process lifetime only. Lost on restart, which means
	// de-duplication across restarts is best-effort.
	mu       sync.Mutex
	idTitles [][2]string
	known    map[string]bool
}

func NewService(gateway contentGateway) *Service {
	return &Service{
		gateway: gateway,
		known:   make(map[string]bool),
	}
}

// GetCategories requests a fresh batch and stamps every item with an id:
// the gateway's reused id when the model matched a cached category, a
// freshly minted one otherwise. New (id, title) pairs feed future
// de-duplication prompts.
func (s *Service) GetCategories(ctx context.Context, existingTitles []string) ([]models.Category, error) {
	generated, err := s.gateway.GenerateCategories(ctx, existingTitles, s.cacheEntries())
	if err != nil {
		return nil, err
	}
	return s.stampIDs(generated), nil
}

func (s *Service) SearchCategories(ctx context.Context, search string, existingTitles []string) ([]models.Category, error) {
	generated, err := s.gateway.SearchCategories(ctx, search, existingTitles, s.cacheEntries())
	if err != nil {
		return nil, err
	}
	return s.stampIDs(generated), nil
}

func (s *Service) GetSubcategories(ctx context.Context, category string, existing []string) ([]models.Subcategory, error) {
	return s.gateway.GenerateSubcategories(ctx, category, existing)
}

func (s *Service) SearchSubcategories(ctx context.Context, categoryTitle, search string, existing []string) ([]models.Subcategory, error) {
	return s.gateway.SearchSubcategories(ctx, categoryTitle, search, existing)
}

func (s *Service) cacheEntries() [][2]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([][2]string, len(s.idTitles))
	copy(entries, s.idTitles)
	return entries
}

func (s *Service) stampIDs(generated []models.Category) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamped := make([]models.Category, 0, len(generated))
	for _, category := range generated {
		if category.CachedID != "" {
			category.ID = category.CachedID
		} else {
			category.ID = "cat_" + uuid.NewString()
			if !s.known[category.ID] {
				s.known[category.ID] = true
				s.idTitles = append(s.idTitles, [2]string{category.ID, category.Name})
			}
		}
		stamped = append(stamped, category)
	}
	return stamped
}
