package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/artifaks/herbal-wisdom/internal/cache"
	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/repository"
)

const (
	herbCategoriesCacheKey = "herbs:categories"
	lookupCacheTTL         = 10 * time.Minute
)

// HerbPage is a counted page of herbs.
type HerbPage struct {
	Data  []model.Herb `json:"data"`
	Count int64        `json:"count"`
}

// HerbService provides herb directory operations.
type HerbService interface {
	List(ctx context.Context, filter model.HerbFilter, page model.Pagination) (*HerbPage, error)
	GetByID(ctx context.Context, id uint) (*model.Herb, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, herb *model.Herb) error
	Update(ctx context.Context, herb *model.Herb) error
	Delete(ctx context.Context, id uint) error
}

type herbService struct {
	herbRepo repository.HerbRepository
	cache    *cache.Client
}

// NewHerbService creates a new herb service.
func NewHerbService(herbRepo repository.HerbRepository, cache *cache.Client) HerbService {
	return &herbService{herbRepo: herbRepo, cache: cache}
}

// List returns a counted page of herbs matching the filter.
func (s *herbService) List(ctx context.Context, filter model.HerbFilter, page model.Pagination) (*HerbPage, error) {
	if page.PageSize <= 0 {
		page.PageSize = 20
	}
	herbs, total, err := s.herbRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list herbs: %w", err)
	}
	if herbs == nil {
		herbs = []model.Herb{}
	}
	return &HerbPage{Data: herbs, Count: total}, nil
}

// GetByID returns a single herb.
func (s *herbService) GetByID(ctx context.Context, id uint) (*model.Herb, error) {
	herb, err := s.herbRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrHerbNotFound
		}
		return nil, fmt.Errorf("find herb: %w", err)
	}
	return herb, nil
}

// Categories returns the distinct herb categories, cached for a few minutes.
func (s *herbService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if s.cache.GetJSON(ctx, herbCategoriesCacheKey, &categories) {
		return categories, nil
	}

	categories, err := s.herbRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list herb categories: %w", err)
	}
	s.cache.SetJSON(ctx, herbCategoriesCacheKey, categories, lookupCacheTTL)
	return categories, nil
}

// Create adds a new herb and invalidates the category cache.
func (s *herbService) Create(ctx context.Context, herb *model.Herb) error {
	if err := s.herbRepo.Create(ctx, herb); err != nil {
		return fmt.Errorf("create herb: %w", err)
	}
	_ = s.cache.Delete(ctx, herbCategoriesCacheKey)
	return nil
}

// Update modifies an existing herb and invalidates the category cache.
func (s *herbService) Update(ctx context.Context, herb *model.Herb) error {
	if _, err := s.herbRepo.FindByID(ctx, herb.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrHerbNotFound
		}
		return fmt.Errorf("find herb: %w", err)
	}
	if err := s.herbRepo.Update(ctx, herb); err != nil {
		return fmt.Errorf("update herb: %w", err)
	}
	_ = s.cache.Delete(ctx, herbCategoriesCacheKey)
	return nil
}

// Delete removes a herb.
func (s *herbService) Delete(ctx context.Context, id uint) error {
	if _, err := s.herbRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrHerbNotFound
		}
		return fmt.Errorf("find herb: %w", err)
	}
	if err := s.herbRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete herb: %w", err)
	}
	_ = s.cache.Delete(ctx, herbCategoriesCacheKey)
	return nil
}
