package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/artifaks/herbal-wisdom/internal/model"
)

// HerbRepository defines herb persistence operations.
type HerbRepository interface {
	List(ctx context.Context, filter model.HerbFilter, page model.Pagination) ([]model.Herb, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Herb, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, herb *model.Herb) error
	Update(ctx context.Context, herb *model.Herb) error
	Delete(ctx context.Context, id uint) error
}

type herbRepository struct {
	db *gorm.DB
}

// NewHerbRepository creates a new herb repository.
func NewHerbRepository(db *gorm.DB) HerbRepository {
	return &herbRepository{db: db}
}

func (r *herbRepository) applyFilter(q *gorm.DB, filter model.HerbFilter) *gorm.DB {
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.IsPremium != nil {
		q = q.Where("is_premium = ?", *filter.IsPremium)
	}
	if filter.SearchQuery != "" {
		pattern := "%" + filter.SearchQuery + "%"
		q = q.Where("name LIKE ? OR scientific_name LIKE ? OR description LIKE ?", pattern, pattern, pattern)
	}
	if filter.Illness != "" {
		q = q.Where("JSON_CONTAINS(treats_illnesses, JSON_QUOTE(?))", filter.Illness)
	}
	return q
}

// List returns a counted page of herbs matching the filter.
func (r *herbRepository) List(ctx context.Context, filter model.HerbFilter, page model.Pagination) ([]model.Herb, int64, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Herb{}), filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var herbs []model.Herb
	if err := q.Offset(page.Offset()).Limit(page.PageSize).Order("name ASC").Find(&herbs).Error; err != nil {
		return nil, 0, err
	}
	return herbs, total, nil
}

// FindByID finds a herb by ID.
func (r *herbRepository) FindByID(ctx context.Context, id uint) (*model.Herb, error) {
	var herb model.Herb
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&herb).Error; err != nil {
		return nil, err
	}
	return &herb, nil
}

// Categories returns the distinct non-empty herb categories, sorted.
func (r *herbRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Herb{}).
		Distinct("category").
		Where("category IS NOT NULL AND category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Create creates a new herb.
func (r *herbRepository) Create(ctx context.Context, herb *model.Herb) error {
	return r.db.WithContext(ctx).Create(herb).Error
}

// Update updates an existing herb.
func (r *herbRepository) Update(ctx context.Context, herb *model.Herb) error {
	return r.db.WithContext(ctx).Save(herb).Error
}

// Delete removes a herb by ID.
func (r *herbRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Herb{}, id).Error
}
