package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/civilregistry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActRepository implements ActRepository using GORM
type GormActRepository struct {
	db *gorm.DB
}

// NewGormActRepository creates a new GormActRepository
func NewGormActRepository(db *gorm.DB) *GormActRepository {
	return &GormActRepository{db: db}
}

// Exists reports whether an act with the given identity exists
func (r *GormActRepository) Exists(ctx context.Context, actID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActModel{}).
		Where("id = ?", actID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindSignedByID loads an act together with its mentions and persons
func (r *GormActRepository) FindSignedByID(ctx context.Context, actID uuid.UUID) (*registry.Act, error) {
	var model models.ActModel
	if err := r.db.WithContext(ctx).
		Preload("Mentions").
		Preload("Persons").
		First(&model, "id = ?", actID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// NatureByID returns the nature of the act
func (r *GormActRepository) NatureByID(ctx context.Context, actID uuid.UUID) (registry.ActNature, error) {
	var nature string
	if err := r.db.WithContext(ctx).
		Model(&models.ActModel{}).
		Where("id = ?", actID).
		Pluck("nature", &nature).Error; err != nil {
		return "", err
	}
	if nature == "" {
		return "", shared.ErrNotFound
	}
	return registry.ActNature(nature), nil
}

// UpdateLastModified sets the act's last-modified calendar date
func (r *GormActRepository) UpdateLastModified(ctx context.Context, actID uuid.UUID, day time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ActModel{}).
		Where("id = ?", actID).
		Update("last_mention_update", day).Error
}

var _ registry.ActRepository = (*GormActRepository)(nil)
