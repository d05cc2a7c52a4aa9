package persistence

import (
	"context"
	"errors"

	"github.com/civilregistry/backend/internal/domain/identity"
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/civilregistry/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOfficerRepository implements OfficerRepository using GORM
type GormOfficerRepository struct {
	db *gorm.DB
}

// NewGormOfficerRepository creates a new GormOfficerRepository
func NewGormOfficerRepository(db *gorm.DB) *GormOfficerRepository {
	return &GormOfficerRepository{db: db}
}

// FindByExternalID finds an officer by the identifier carried in the
// authentication token
func (r *GormOfficerRepository) FindByExternalID(ctx context.Context, externalID string) (*identity.Officer, error) {
	var model models.OfficerModel
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts an officer record keyed by external ID. Used by the
// provisioning sync from the rights-management system.
func (r *GormOfficerRepository) Save(ctx context.Context, officer *identity.Officer) error {
	var model models.OfficerModel
	model.FromDomain(officer)
	return r.db.WithContext(ctx).Save(&model).Error
}

var _ identity.OfficerRepository = (*GormOfficerRepository)(nil)
