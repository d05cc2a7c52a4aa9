package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/domain/shared"
)

// MentionRequest is the wire form of a mention submitted by a caller, either
// as a reconciliation pass or as a fresh draft. A zero ID means the mention
// has no server-side identity yet.
type MentionRequest struct {
	ID               *uuid.UUID `json:"id"`
	TypeID           *uuid.UUID `json:"type_id"`
	OrderNumber      int64      `json:"order_number"`
	ExtractOrder     *int64     `json:"extract_order"`
	MentionText      *string    `json:"mention_text"`
	AppositionText   *string    `json:"apposition_text"`
	AuthorityText    *string    `json:"authority_text"`
	DeliveryText     *string    `json:"delivery_text"`
	MultilingualText *string    `json:"multilingual_text"`
}

// ToDomain converts the request to a domain mention attached to the given act.
func (r MentionRequest) ToDomain(actID uuid.UUID) registry.Mention {
	m := registry.Mention{
		ActID:        actID,
		TypeID:       r.TypeID,
		OrderNumber:  r.OrderNumber,
		ExtractOrder: r.ExtractOrder,
		Texts: registry.MentionTexts{
			Mention:      r.MentionText,
			Apposition:   r.AppositionText,
			Authority:    r.AuthorityText,
			Delivery:     r.DeliveryText,
			Multilingual: r.MultilingualText,
		},
	}
	if r.ID != nil {
		m.BaseEntity = shared.BaseEntity{ID: *r.ID}
	}
	return m
}

// AuthorityResponse is the authority block of a mention.
type AuthorityResponse struct {
	Name             string  `json:"name"`
	OfficerFirstName *string `json:"officer_first_name,omitempty"`
	OfficerLastName  *string `json:"officer_last_name,omitempty"`
}

// MentionResponse is the wire form of a stored mention.
type MentionResponse struct {
	ID               uuid.UUID          `json:"id"`
	ActID            uuid.UUID          `json:"act_id"`
	TypeID           *uuid.UUID         `json:"type_id,omitempty"`
	OrderNumber      int64              `json:"order_number"`
	ExtractOrder     *int64             `json:"extract_order,omitempty"`
	Status           string             `json:"status"`
	Origin           string             `json:"origin"`
	MentionText      *string            `json:"mention_text,omitempty"`
	AppositionText   *string            `json:"apposition_text,omitempty"`
	AuthorityText    *string            `json:"authority_text,omitempty"`
	DeliveryText     *string            `json:"delivery_text,omitempty"`
	MultilingualText *string            `json:"multilingual_text,omitempty"`
	AppositionCity   *string            `json:"apposition_city,omitempty"`
	AppositionRegion *string            `json:"apposition_region,omitempty"`
	AppositionDate   *time.Time         `json:"apposition_date,omitempty"`
	Authority        *AuthorityResponse `json:"authority,omitempty"`
	DocumentID       *uuid.UUID         `json:"document_id,omitempty"`
	SignedAt         *time.Time         `json:"signed_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewMentionResponse converts a domain mention to its wire form.
func NewMentionResponse(m registry.Mention) MentionResponse {
	resp := MentionResponse{
		ID:               m.ID,
		ActID:            m.ActID,
		TypeID:           m.TypeID,
		OrderNumber:      m.OrderNumber,
		ExtractOrder:     m.ExtractOrder,
		Status:           m.Status.String(),
		Origin:           string(m.Origin),
		MentionText:      m.Texts.Mention,
		AppositionText:   m.Texts.Apposition,
		AuthorityText:    m.Texts.Authority,
		DeliveryText:     m.Texts.Delivery,
		MultilingualText: m.Texts.Multilingual,
		AppositionCity:   m.AppositionCity,
		AppositionRegion: m.AppositionRegion,
		AppositionDate:   m.AppositionDate,
		DocumentID:       m.DocumentID,
		SignedAt:         m.SignedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Authority != nil {
		resp.Authority = &AuthorityResponse{
			Name:             m.Authority.Name,
			OfficerFirstName: m.Authority.OfficerFirstName,
			OfficerLastName:  m.Authority.OfficerLastName,
		}
	}
	return resp
}

// NewMentionResponses converts a slice of domain mentions.
func NewMentionResponses(mentions []registry.Mention) []MentionResponse {
	out := make([]MentionResponse, 0, len(mentions))
	for _, m := range mentions {
		out = append(out, NewMentionResponse(m))
	}
	return out
}

// ReconcileMentionsRequest carries the full mention set an external pass
// believes the act should have.
type ReconcileMentionsRequest struct {
	Mentions []MentionRequest `json:"mentions"`
}

// CreateDraftMentionsRequest carries hand-authored drafts to append to an act.
type CreateDraftMentionsRequest struct {
	Mentions []MentionRequest `json:"mentions" binding:"required,min=1"`
}

// PrepareDocumentRequest names the officer whose signature the document is
// prepared for.
type PrepareDocumentRequest struct {
	OfficerFirstName string `json:"officer_first_name" binding:"required"`
	OfficerLastName  string `json:"officer_last_name" binding:"required"`
}

// PrepareDocumentResponse carries the composed document, base64-encoded.
type PrepareDocumentResponse struct {
	Document string `json:"document"`
}

// SignedDocumentRequest carries the signed document returned by the signing
// subsystem, base64-encoded.
type SignedDocumentRequest struct {
	Document string `json:"document" binding:"required"`
}
