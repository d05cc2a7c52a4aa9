package mention

import (
	"context"
	"time"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/google/uuid"
)

// Availability is the reported state of the external signing subsystem
type Availability string

const (
	AvailabilityAvailable   Availability = "AVAILABLE"
	AvailabilityUnavailable Availability = "UNAVAILABLE"
)

// Signature is the transient value describing who signs a mention document.
// It is consumed to stamp text fields and never persisted on its own.
type Signature struct {
	OfficerFirstName string
	OfficerLastName  string
}

// SignatureMonitor reports whether the external signing subsystem can accept
// work. Checked proactively so no sequence number is burnt on a doomed call.
type SignatureMonitor interface {
	Status(ctx context.Context) (Availability, error)
}

// TimestampResult carries the verified timestamp and canonical content
// extracted from an augmented signed document.
type TimestampResult struct {
	Timestamp time.Time
	Content   []byte
}

// TimestampAuthority is the external cryptographic timestamping collaborator.
type TimestampAuthority interface {
	// AugmentToLongTermValidation upgrades a signed document from its interim
	// signature level to a long-term-validation level
	AugmentToLongTermValidation(ctx context.Context, signed []byte) ([]byte, error)

	// ValidateAndExtract validates the augmented document and extracts its
	// verified timestamp and canonical content
	ValidateAndExtract(ctx context.Context, augmented []byte) (*TimestampResult, error)

	// CreateReviewBlock records a needs-human-review block after a technical
	// failure mid-commit, so operator tooling can unblock once the dependency
	// recovers
	CreateReviewBlock(ctx context.Context) error
}

// Composer turns the signable draft mentions of an act into a single binary
// document ready for signing. The sequence number is used purely for the
// document's printed numbering.
type Composer interface {
	ComposeMentionsDocument(ctx context.Context, act *registry.Act, sequence int) ([]byte, error)
}

// ObjectStorage persists signed binary content durably and returns its
// locator.
type ObjectStorage interface {
	StoreSignedDocument(ctx context.Context, content []byte, documentID uuid.UUID) (registry.StorageResult, error)
}
