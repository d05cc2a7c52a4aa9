package persistence

import (
	"context"
	"errors"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/civilregistry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentMentionsRepository implements DocumentMentionsRepository using
// GORM. A partial unique index on (act_id) WHERE status = 'NON_SIGNED'
// enforces the single-unsigned-document invariant at the store level.
type GormDocumentMentionsRepository struct {
	db *gorm.DB
}

// NewGormDocumentMentionsRepository creates a new GormDocumentMentionsRepository
func NewGormDocumentMentionsRepository(db *gorm.DB) *GormDocumentMentionsRepository {
	return &GormDocumentMentionsRepository{db: db}
}

// FindByActAndStatus returns the act's document in the given status
func (r *GormDocumentMentionsRepository) FindByActAndStatus(ctx context.Context, actID uuid.UUID, status registry.DocumentStatus) (*registry.DocumentMentions, error) {
	var model models.DocumentMentionsModel
	query := r.db.WithContext(ctx).
		Where("act_id = ? AND status = ?", actID, string(status))
	if status == registry.DocumentStatusSigned {
		// Several signed documents may exist; callers want the latest.
		query = query.Order("created_at DESC")
	}
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a new document record. A concurrent creation for the same
// act trips the partial unique index and surfaces as ErrAlreadyExists.
func (r *GormDocumentMentionsRepository) Save(ctx context.Context, document *registry.DocumentMentions) error {
	var model models.DocumentMentionsModel
	model.FromDomain(document)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// MarkSigned transitions the act's NON_SIGNED document to SIGNED with the
// storage locator
func (r *GormDocumentMentionsRepository) MarkSigned(ctx context.Context, actID uuid.UUID, container, reference string) error {
	result := r.db.WithContext(ctx).
		Model(&models.DocumentMentionsModel{}).
		Where("act_id = ? AND status = ?", actID, string(registry.DocumentStatusNonSigned)).
		Updates(map[string]any{
			"status":    string(registry.DocumentStatusSigned),
			"container": container,
			"reference": reference,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ registry.DocumentMentionsRepository = (*GormDocumentMentionsRepository)(nil)
