package persistence

import (
	"context"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/civilregistry/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEvidenceRepository implements EvidenceRepository using GORM
type GormEvidenceRepository struct {
	db *gorm.DB
}

// NewGormEvidenceRepository creates a new GormEvidenceRepository
func NewGormEvidenceRepository(db *gorm.DB) *GormEvidenceRepository {
	return &GormEvidenceRepository{db: db}
}

// RecordPreSignature captures the composed content before it is handed to the
// external signing step
func (r *GormEvidenceRepository) RecordPreSignature(ctx context.Context, documentID uuid.UUID, content []byte) error {
	model := models.PreSignatureEvidenceModel{
		DocumentID: documentID,
		Content:    content,
	}
	model.FromDomainBaseEntity(shared.NewBaseEntity())
	return r.db.WithContext(ctx).Create(&model).Error
}

// RecordPostSignature captures the full signing context after a signature
func (r *GormEvidenceRepository) RecordPostSignature(ctx context.Context, evidence registry.PostSignatureEvidence) error {
	model := models.PostSignatureEvidenceModel{
		DocumentID:        evidence.DocumentID,
		ActID:             evidence.ActID,
		OfficerExternalID: evidence.OfficerExternalID,
		Container:         evidence.Storage.Container,
		Reference:         evidence.Storage.Reference,
		Timestamp:         evidence.Timestamp,
		SignedContentHash: evidence.SignedContentHash,
	}
	model.FromDomainBaseEntity(shared.NewBaseEntity())
	return r.db.WithContext(ctx).Create(&model).Error
}

var _ registry.EvidenceRepository = (*GormEvidenceRepository)(nil)
