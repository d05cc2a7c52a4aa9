package persistence

import (
	"context"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPersonRepository implements PersonRepository using GORM
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new GormPersonRepository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

// UpdateFromAnalysis refreshes the persons' name fields from the analysis and
// persists them
func (r *GormPersonRepository) UpdateFromAnalysis(ctx context.Context, persons []registry.Person, analysis *registry.MarginalAnalysis) error {
	for i := range persons {
		persons[i].ApplyAnalysis(analysis)
		var model models.PersonModel
		model.FromDomain(&persons[i])
		if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
			return err
		}
	}
	return nil
}

var _ registry.PersonRepository = (*GormPersonRepository)(nil)
