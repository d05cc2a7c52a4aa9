package registry

import (
	"time"

	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AnalysisStatus represents the verification state of a marginal analysis
type AnalysisStatus string

const (
	// AnalysisStatusNonValid marks an analysis invalidated by mention changes,
	// awaiting resolution
	AnalysisStatusNonValid AnalysisStatus = "NON_VALID"
	// AnalysisStatusValidated marks a resolved analysis
	AnalysisStatusValidated AnalysisStatus = "VALIDATED"
)

// MarginalAnalysis tracks pending verification state derived from mention
// changes. It carries the identity fields that, once the analysis is signed,
// are propagated onto the titular persons of the act.
type MarginalAnalysis struct {
	shared.BaseEntity
	ActID           uuid.UUID
	Status          AnalysisStatus
	SignedAt        *time.Time
	LastName        *string
	OtherLastNames  *string
	FirstNames      *string
	OtherFirstNames *string
	ResolvedByFirst *string
	ResolvedByLast  *string
}

// Resolve marks the analysis validated, recording the resolving officer.
func (a *MarginalAnalysis) Resolve(officerFirstName, officerLastName string, at time.Time) {
	a.Status = AnalysisStatusValidated
	a.SignedAt = &at
	a.ResolvedByFirst = &officerFirstName
	a.ResolvedByLast = &officerLastName
}
