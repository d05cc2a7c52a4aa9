package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActRepository defines the interface for act persistence
type ActRepository interface {
	// Exists reports whether an act with the given identity exists
	Exists(ctx context.Context, actID uuid.UUID) (bool, error)

	// FindSignedByID loads an act in the SIGNED workflow together with its
	// mentions and persons. Returns shared.ErrNotFound when no act exists.
	FindSignedByID(ctx context.Context, actID uuid.UUID) (*Act, error)

	// NatureByID returns the nature of the act
	NatureByID(ctx context.Context, actID uuid.UUID) (ActNature, error)

	// UpdateLastModified sets the act's last-modified calendar date
	UpdateLastModified(ctx context.Context, actID uuid.UUID, day time.Time) error
}

// MentionRepository defines the interface for mention persistence
type MentionRepository interface {
	// FindByAct returns every mention of an act
	FindByAct(ctx context.Context, actID uuid.UUID) ([]Mention, error)

	// FindByActAndStatus returns the mentions of an act in the given status
	FindByActAndStatus(ctx context.Context, actID uuid.UUID, status MentionStatus) ([]Mention, error)

	// Add inserts a mention for an act
	Add(ctx context.Context, mention *Mention, actID uuid.UUID) error

	// Update updates a mention; natureHint carries the act nature for
	// nature-specific persistence rules
	Update(ctx context.Context, mention *Mention, natureHint string) error

	// Delete removes the mentions with the given identities
	Delete(ctx context.Context, ids []uuid.UUID) error

	// HighestSignedOrder returns the highest order number among the act's
	// signed mentions, or 0 when none exist
	HighestSignedOrder(ctx context.Context, actID uuid.UUID) (int64, error)

	// HighestDocumentSequence returns the highest document sequence number
	// recorded across the act's signed mentions, or 0 when none exist
	HighestDocumentSequence(ctx context.Context, actID uuid.UUID) (int, error)

	// MarkSigned stamps the given mentions with the verified timestamp and
	// links them to the document carrying their signature
	MarkSigned(ctx context.Context, ids []uuid.UUID, signedAt time.Time, documentID uuid.UUID) error
}

// DocumentMentionsRepository defines the interface for composed-document
// persistence
type DocumentMentionsRepository interface {
	// FindByActAndStatus returns the act's document in the given status.
	// Returns shared.ErrNotFound when none exists. The store guarantees at
	// most one NON_SIGNED document per act.
	FindByActAndStatus(ctx context.Context, actID uuid.UUID, status DocumentStatus) (*DocumentMentions, error)

	// Save persists a new document record. Returns shared.ErrAlreadyExists
	// when a NON_SIGNED document already exists for the act.
	Save(ctx context.Context, document *DocumentMentions) error

	// MarkSigned transitions the act's NON_SIGNED document to SIGNED with the
	// storage locator
	MarkSigned(ctx context.Context, actID uuid.UUID, container, reference string) error
}

// AnalysisRepository defines the interface for marginal-analysis persistence
type AnalysisRepository interface {
	// NonValidIDsByAct returns the identities of the act's non-valid analyses
	NonValidIDsByAct(ctx context.Context, actID uuid.UUID) ([]uuid.UUID, error)

	// LatestSignedByAct returns the most recently signed analysis of the act,
	// or shared.ErrNotFound
	LatestSignedByAct(ctx context.Context, actID uuid.UUID) (*MarginalAnalysis, error)

	// MarkResolved validates the act's non-valid analysis, stamping the
	// resolution instant and the resolving officer's name
	MarkResolved(ctx context.Context, actID uuid.UUID, resolvedAt time.Time, officerFirstName, officerLastName string) error

	// DeleteNonValid removes the act's non-valid analyses
	DeleteNonValid(ctx context.Context, actID uuid.UUID) error
}

// PersonRepository defines the interface for person persistence
type PersonRepository interface {
	// UpdateFromAnalysis refreshes the persons' name fields from the analysis
	// and persists them
	UpdateFromAnalysis(ctx context.Context, persons []Person, analysis *MarginalAnalysis) error
}

// EvidenceRepository records signature evidence for audit
type EvidenceRepository interface {
	// RecordPreSignature captures the composed content before it is handed to
	// the external signing step, keyed by the document identity
	RecordPreSignature(ctx context.Context, documentID uuid.UUID, content []byte) error

	// RecordPostSignature captures the full signing context after a signature
	RecordPostSignature(ctx context.Context, evidence PostSignatureEvidence) error
}
