package registry

import (
	"time"

	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MentionStatus represents the lifecycle status of a mention
type MentionStatus string

const (
	MentionStatusDraft  MentionStatus = "DRAFT"
	MentionStatusSigned MentionStatus = "SIGNED"
)

// IsValid checks if the status is a valid MentionStatus
func (s MentionStatus) IsValid() bool {
	switch s {
	case MentionStatusDraft, MentionStatusSigned:
		return true
	}
	return false
}

// String returns the string representation of MentionStatus
func (s MentionStatus) String() string {
	return string(s)
}

// MentionOrigin distinguishes mentions generated by this system from mentions
// supplied by an external authority.
type MentionOrigin string

const (
	OriginSystem   MentionOrigin = "SYSTEM"
	OriginExternal MentionOrigin = "EXTERNAL"
)

// MentionTexts groups the free-text fields of a mention. Nil means the field
// was never set, which is significant for the delivery-artifact rules.
type MentionTexts struct {
	Mention      *string
	Apposition   *string
	Authority    *string
	Delivery     *string
	Multilingual *string
}

// Authority is the issuing civil-status authority block of a mention,
// stamped with the signing officer's name during document preparation.
type Authority struct {
	Name             string
	OfficerFirstName *string
	OfficerLastName  *string
}

// Mention is a marginal amendment belonging to exactly one act.
type Mention struct {
	shared.BaseEntity
	ActID            uuid.UUID
	TypeID           *uuid.UUID
	OrderNumber      int64
	ExtractOrder     *int64
	Status           MentionStatus
	Origin           MentionOrigin
	Texts            MentionTexts
	AppositionCity   *string
	AppositionRegion *string
	AppositionDate   *time.Time
	Authority        *Authority
	DocumentID       *uuid.UUID
	SignedAt         *time.Time
}

// HasType reports whether the mention carries a mention-type identity.
func (m *Mention) HasType() bool {
	return m.TypeID != nil && *m.TypeID != uuid.Nil
}

// IsDeliveryArtifact reports whether the mention was produced as a delivery
// artifact: no mention text but a delivery or multilingual variant. Only such
// mentions may be removed by reconciliation, protecting hand-authored drafts
// from a pass that did not echo them back.
func (m *Mention) IsDeliveryArtifact() bool {
	return m.Texts.Mention == nil &&
		(m.Texts.Delivery != nil || m.Texts.Multilingual != nil)
}

// IsSignable reports whether the mention is a draft with real mention text.
func (m *Mention) IsSignable() bool {
	return m.Status == MentionStatusDraft &&
		m.Texts.Mention != nil && *m.Texts.Mention != ""
}

// StampApposition records where and when the mention was apposed, and the
// corresponding display text.
func (m *Mention) StampApposition(city, region string, date time.Time) {
	m.AppositionCity = &city
	m.AppositionRegion = &region
	m.AppositionDate = &date
	text := FormatAppositionText(city, date)
	m.Texts.Apposition = &text
}

// StampAuthority records the signing officer on the authority block and
// regenerates the authority display text. No-op when the mention carries no
// authority block.
func (m *Mention) StampAuthority(firstName, lastName string) {
	if m.Authority == nil {
		return
	}
	m.Authority.OfficerFirstName = &firstName
	m.Authority.OfficerLastName = &lastName
	text := FormatAuthorityText(m.Authority)
	m.Texts.Authority = &text
}

// MarkSigned transitions the mention to SIGNED, stamping the verified
// timestamp and linking it to the composed document that carries its
// signature.
func (m *Mention) MarkSigned(signedAt time.Time, documentID uuid.UUID) {
	m.Status = MentionStatusSigned
	m.SignedAt = &signedAt
	m.DocumentID = &documentID
}

// PrepareForCreation initializes a freshly authored mention: a missing
// identity is generated, the supplied relative order is rebased on the act's
// highest signed order, every
// signature, apposition and variant field is cleared, the mention text gets
// its terminal punctuation and capitalization, origin is forced to SYSTEM and
// an empty authority block is created if absent.
func (m *Mention) PrepareForCreation(baseOrder int64) {
	if m.ID == uuid.Nil {
		m.BaseEntity = shared.NewBaseEntity()
	}
	m.OrderNumber = baseOrder + m.OrderNumber
	m.Status = MentionStatusDraft
	m.AppositionCity = nil
	m.AppositionRegion = nil
	m.AppositionDate = nil
	m.ExtractOrder = nil
	m.SignedAt = nil
	m.DocumentID = nil
	if m.Texts.Mention != nil {
		text := TerminateMentionText(*m.Texts.Mention)
		m.Texts.Mention = &text
	}
	m.Texts.Apposition = nil
	m.Texts.Authority = nil
	m.Texts.Delivery = nil
	m.Texts.Multilingual = nil
	if m.Authority == nil {
		m.Authority = &Authority{}
	}
	m.Authority.OfficerFirstName = nil
	m.Authority.OfficerLastName = nil
	m.Origin = OriginSystem
}
