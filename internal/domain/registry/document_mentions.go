package registry

import (
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentStatus represents the signature status of a composed document
type DocumentStatus string

const (
	DocumentStatusNonSigned DocumentStatus = "NON_SIGNED"
	DocumentStatusSigned    DocumentStatus = "SIGNED"
)

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// DocumentMentions is the single composed, signable artifact bundling all
// currently unsigned mentions of an act. At most one NON_SIGNED record may
// exist per act at any time; repeated composition requests before signing
// reuse it.
type DocumentMentions struct {
	shared.BaseEntity
	ActID          uuid.UUID
	Status         DocumentStatus
	SequenceNumber int
	Container      *string
	Reference      *string
}

// NewDocumentMentions creates a NON_SIGNED document record for an act with a
// freshly generated identifier and the allocated sequence number.
func NewDocumentMentions(actID uuid.UUID, sequenceNumber int) *DocumentMentions {
	return &DocumentMentions{
		BaseEntity:     shared.NewBaseEntity(),
		ActID:          actID,
		Status:         DocumentStatusNonSigned,
		SequenceNumber: sequenceNumber,
	}
}

// MarkSigned transitions the document to SIGNED, attaching the storage
// container and reference of the archived content.
func (d *DocumentMentions) MarkSigned(container, reference string) {
	d.Status = DocumentStatusSigned
	d.Container = &container
	d.Reference = &reference
}
