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

// GormAnalysisRepository implements AnalysisRepository using GORM
type GormAnalysisRepository struct {
	db *gorm.DB
}

// NewGormAnalysisRepository creates a new GormAnalysisRepository
func NewGormAnalysisRepository(db *gorm.DB) *GormAnalysisRepository {
	return &GormAnalysisRepository{db: db}
}

// NonValidIDsByAct returns the identities of the act's non-valid analyses
func (r *GormAnalysisRepository) NonValidIDsByAct(ctx context.Context, actID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.MarginalAnalysisModel{}).
		Where("act_id = ? AND status = ?", actID, string(registry.AnalysisStatusNonValid)).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// LatestSignedByAct returns the most recently signed analysis of the act
func (r *GormAnalysisRepository) LatestSignedByAct(ctx context.Context, actID uuid.UUID) (*registry.MarginalAnalysis, error) {
	var model models.MarginalAnalysisModel
	if err := r.db.WithContext(ctx).
		Where("act_id = ? AND signed_at IS NOT NULL", actID).
		Order("signed_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// MarkResolved validates the act's non-valid analysis, recording the
// resolving officer's name and the resolution instant
func (r *GormAnalysisRepository) MarkResolved(ctx context.Context, actID uuid.UUID, resolvedAt time.Time, officerFirstName, officerLastName string) error {
	return r.db.WithContext(ctx).
		Model(&models.MarginalAnalysisModel{}).
		Where("act_id = ? AND status = ?", actID, string(registry.AnalysisStatusNonValid)).
		Updates(map[string]any{
			"status":            string(registry.AnalysisStatusValidated),
			"signed_at":         resolvedAt,
			"resolved_by_first": officerFirstName,
			"resolved_by_last":  officerLastName,
		}).Error
}

// DeleteNonValid removes the act's non-valid analyses
func (r *GormAnalysisRepository) DeleteNonValid(ctx context.Context, actID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("act_id = ? AND status = ?", actID, string(registry.AnalysisStatusNonValid)).
		Delete(&models.MarginalAnalysisModel{}).Error
}

var _ registry.AnalysisRepository = (*GormAnalysisRepository)(nil)
