package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/artifaks/herbal-wisdom/internal/cache"
	apperrors "github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/repository"
)

const storeSpecialtiesCacheKey = "stores:specialties"

// StoreService provides store directory operations.
type StoreService interface {
	List(ctx context.Context, filter model.StoreFilter) ([]RankedStore, error)
	GetByID(ctx context.Context, id uint) (*model.Store, error)
	Locations(ctx context.Context) ([]model.StoreLocation, error)
	Specialties(ctx context.Context) ([]string, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
	cache     *cache.Client
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo repository.StoreRepository, cache *cache.Client) StoreService {
	return &storeService{storeRepo: storeRepo, cache: cache}
}

// List fetches candidate stores from the database and runs them through the
// ranking pipeline for geofiltering, distance annotation and ordering.
func (s *storeService) List(ctx context.Context, filter model.StoreFilter) ([]RankedStore, error) {
	stores, err := s.storeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return RankStores(stores, filter), nil
}

// GetByID returns a single store.
func (s *storeService) GetByID(ctx context.Context, id uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return store, nil
}

// Locations returns the distinct (city, state) pairs offered as filter choices.
func (s *storeService) Locations(ctx context.Context) ([]model.StoreLocation, error) {
	locations, err := s.storeRepo.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list store locations: %w", err)
	}
	return locations, nil
}

// Specialties returns the unique specialties across all stores, sorted and
// cached for a few minutes.
func (s *storeService) Specialties(ctx context.Context) ([]string, error) {
	var specialties []string
	if s.cache.GetJSON(ctx, storeSpecialtiesCacheKey, &specialties) {
		return specialties, nil
	}

	sets, err := s.storeRepo.SpecialtySets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list store specialties: %w", err)
	}

	seen := make(map[string]struct{})
	specialties = []string{}
	for _, set := range sets {
		for _, specialty := range set {
			if _, ok := seen[specialty]; ok {
				continue
			}
			seen[specialty] = struct{}{}
			specialties = append(specialties, specialty)
		}
	}
	sort.Strings(specialties)

	s.cache.SetJSON(ctx, storeSpecialtiesCacheKey, specialties, lookupCacheTTL)
	return specialties, nil
}
