package persistence

import (
	"context"
	"time"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMentionRepository implements MentionRepository using GORM
type GormMentionRepository struct {
	db *gorm.DB
}

// NewGormMentionRepository creates a new GormMentionRepository
func NewGormMentionRepository(db *gorm.DB) *GormMentionRepository {
	return &GormMentionRepository{db: db}
}

// FindByAct returns every mention of an act, ordered by order number
func (r *GormMentionRepository) FindByAct(ctx context.Context, actID uuid.UUID) ([]registry.Mention, error) {
	var mentionModels []models.MentionModel
	if err := r.db.WithContext(ctx).
		Where("act_id = ?", actID).
		Order("order_number ASC").
		Find(&mentionModels).Error; err != nil {
		return nil, err
	}
	return toDomainMentions(mentionModels), nil
}

// FindByActAndStatus returns the mentions of an act in the given status
func (r *GormMentionRepository) FindByActAndStatus(ctx context.Context, actID uuid.UUID, status registry.MentionStatus) ([]registry.Mention, error) {
	var mentionModels []models.MentionModel
	if err := r.db.WithContext(ctx).
		Where("act_id = ? AND status = ?", actID, string(status)).
		Order("order_number ASC").
		Find(&mentionModels).Error; err != nil {
		return nil, err
	}
	return toDomainMentions(mentionModels), nil
}

// Add inserts or refreshes a mention for an act. Stamping during document
// preparation re-saves drafts that already exist, so an upsert keeps the two
// call sites on one path.
func (r *GormMentionRepository) Add(ctx context.Context, mention *registry.Mention, actID uuid.UUID) error {
	var model models.MentionModel
	model.FromDomain(mention, actID)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Update updates a mention. The nature hint names the act's registry so
// nature-specific errors stay attributable.
func (r *GormMentionRepository) Update(ctx context.Context, mention *registry.Mention, natureHint string) error {
	var model models.MentionModel
	model.FromDomain(mention, mention.ActID)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes the mentions with the given identities
func (r *GormMentionRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.MentionModel{}).Error
}

// HighestSignedOrder returns the highest order number among the act's signed
// mentions, or 0 when none exist
func (r *GormMentionRepository) HighestSignedOrder(ctx context.Context, actID uuid.UUID) (int64, error) {
	var highest *int64
	if err := r.db.WithContext(ctx).
		Model(&models.MentionModel{}).
		Where("act_id = ? AND status = ?", actID, string(registry.MentionStatusSigned)).
		Select("MAX(order_number)").
		Scan(&highest).Error; err != nil {
		return 0, err
	}
	if highest == nil {
		return 0, nil
	}
	return *highest, nil
}

// HighestDocumentSequence returns the highest sequence number ever allocated
// to a composed document of the act, or 0 when none was. Sequence numbers are
// carried by the document records; failed attempts leave gaps that are never
// reused.
func (r *GormMentionRepository) HighestDocumentSequence(ctx context.Context, actID uuid.UUID) (int, error) {
	var highest *int
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentMentionsModel{}).
		Where("act_id = ?", actID).
		Select("MAX(sequence_number)").
		Scan(&highest).Error; err != nil {
		return 0, err
	}
	if highest == nil {
		return 0, nil
	}
	return *highest, nil
}

// MarkSigned stamps the given mentions with the verified timestamp and links
// them to the document carrying their signature
func (r *GormMentionRepository) MarkSigned(ctx context.Context, ids []uuid.UUID, signedAt time.Time, documentID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.MentionModel{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":      string(registry.MentionStatusSigned),
			"signed_at":   signedAt,
			"document_id": documentID,
		}).Error
}

func toDomainMentions(mentionModels []models.MentionModel) []registry.Mention {
	mentions := make([]registry.Mention, len(mentionModels))
	for i := range mentionModels {
		mentions[i] = *mentionModels[i].ToDomain()
	}
	return mentions
}

var _ registry.MentionRepository = (*GormMentionRepository)(nil)
