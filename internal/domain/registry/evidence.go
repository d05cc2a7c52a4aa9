package registry

import (
	"time"

	"github.com/google/uuid"
)

// StorageResult locates signed content in the archival object store.
type StorageResult struct {
	Container string
	Reference string
}

// PostSignatureEvidence links everything a later audit needs about one
// signature: the signed document, the act, the officer, the storage locator
// and the verified timestamp.
type PostSignatureEvidence struct {
	DocumentID        uuid.UUID
	ActID             uuid.UUID
	OfficerExternalID string
	Storage           StorageResult
	Timestamp         time.Time
	SignedContentHash string
}
