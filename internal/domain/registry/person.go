package registry

import (
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Person is a titulary of an act. Its denormalized name fields are refreshed
// from the latest signed marginal analysis after each signature.
type Person struct {
	shared.BaseEntity
	ActID           uuid.UUID
	LastName        string
	OtherLastNames  *string
	FirstNames      string
	OtherFirstNames *string
}

// ApplyAnalysis overwrites the person's name fields with the identity fields
// carried by the analysis. Nil analysis fields leave the person unchanged.
func (p *Person) ApplyAnalysis(analysis *MarginalAnalysis) {
	if analysis == nil {
		return
	}
	if analysis.LastName != nil {
		p.LastName = *analysis.LastName
	}
	if analysis.OtherLastNames != nil {
		p.OtherLastNames = analysis.OtherLastNames
	}
	if analysis.FirstNames != nil {
		p.FirstNames = *analysis.FirstNames
	}
	if analysis.OtherFirstNames != nil {
		p.OtherFirstNames = analysis.OtherFirstNames
	}
}
