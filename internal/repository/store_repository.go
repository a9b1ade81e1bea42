package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/artifaks/herbal-wisdom/internal/model"
)

// StoreRepository defines store persistence operations. Store records are
// read-only from this service's perspective.
type StoreRepository interface {
	List(ctx context.Context, filter model.StoreFilter) ([]model.Store, error)
	FindByID(ctx context.Context, id uint) (*model.Store, error)
	Locations(ctx context.Context) ([]model.StoreLocation, error)
	SpecialtySets(ctx context.Context) ([][]string, error)
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// List returns stores matching the database-side filters: substring search,
// city/state equality and specialty membership. Geofiltering and ordering are
// applied by the caller over the returned rows.
func (r *storeRepository) List(ctx context.Context, filter model.StoreFilter) ([]model.Store, error) {
	q := r.db.WithContext(ctx).Model(&model.Store{})

	if filter.SearchQuery != "" {
		pattern := "%" + filter.SearchQuery + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	if filter.Specialty != "" {
		q = q.Where("JSON_CONTAINS(specialties, JSON_QUOTE(?))", filter.Specialty)
	}

	var stores []model.Store
	if err := q.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// FindByID finds a store by ID.
func (r *storeRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// Locations returns the distinct (city, state) pairs ordered by state then city.
func (r *storeRepository) Locations(ctx context.Context) ([]model.StoreLocation, error) {
	var locations []model.StoreLocation
	err := r.db.WithContext(ctx).Model(&model.Store{}).
		Distinct("city", "state").
		Order("state ASC, city ASC").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

// SpecialtySets returns the specialty list of every store. Flattening and
// de-duplication happen in the service layer.
func (r *storeRepository) SpecialtySets(ctx context.Context) ([][]string, error) {
	var stores []model.Store
	if err := r.db.WithContext(ctx).Select("specialties").Find(&stores).Error; err != nil {
		return nil, err
	}
	sets := make([][]string, 0, len(stores))
	for _, store := range stores {
		sets = append(sets, store.Specialties)
	}
	return sets, nil
}
