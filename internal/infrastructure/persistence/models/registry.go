package models

import (
	"time"

	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/google/uuid"
)

// ActModel is the persistence model for civil-status acts
type ActModel struct {
	BaseModel
	Nature            string   `gorm:"type:varchar(32);not null;index"`
	Status            string   `gorm:"type:varchar(16);not null;index"`
	Electronic        bool     `gorm:"not null;default:false"`
	BodyText          *string  `gorm:"type:text"`
	Images            []string `gorm:"serializer:json"`
	LastMentionUpdate *time.Time

	Mentions []MentionModel `gorm:"foreignKey:ActID"`
	Persons  []PersonModel  `gorm:"foreignKey:ActID"`
}

// TableName returns the table name for ActModel
func (ActModel) TableName() string {
	return "acts"
}

// ToDomain converts ActModel to a domain Act
func (m *ActModel) ToDomain() *registry.Act {
	act := &registry.Act{
		BaseEntity: m.BaseModel.ToDomain(),
		Nature:     registry.ActNature(m.Nature),
		Status:     registry.ActStatus(m.Status),
		Electronic: m.Electronic,
		BodyText:   m.BodyText,
		Images:     m.Images,
	}
	act.Mentions = make([]registry.Mention, len(m.Mentions))
	for i := range m.Mentions {
		act.Mentions[i] = *m.Mentions[i].ToDomain()
	}
	act.Persons = make([]registry.Person, len(m.Persons))
	for i := range m.Persons {
		act.Persons[i] = *m.Persons[i].ToDomain()
	}
	return act
}

// MentionModel is the persistence model for mentions
type MentionModel struct {
	BaseModel
	ActID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	TypeID       *uuid.UUID `gorm:"type:uuid"`
	OrderNumber  int64      `gorm:"not null;default:0"`
	ExtractOrder *int64
	Status       string `gorm:"type:varchar(16);not null;index"`
	Origin       string `gorm:"type:varchar(16);not null"`

	MentionText      *string `gorm:"type:text"`
	AppositionText   *string `gorm:"type:text"`
	AuthorityText    *string `gorm:"type:text"`
	DeliveryText     *string `gorm:"type:text"`
	MultilingualText *string `gorm:"type:text"`

	AppositionCity   *string `gorm:"type:varchar(255)"`
	AppositionRegion *string `gorm:"type:varchar(255)"`
	AppositionDate   *time.Time

	// AuthorityName non-nil marks the presence of the authority block; the
	// name itself may be empty until stamping.
	AuthorityName         *string `gorm:"type:varchar(255)"`
	AuthorityOfficerFirst *string `gorm:"type:varchar(255)"`
	AuthorityOfficerLast  *string `gorm:"type:varchar(255)"`

	DocumentID *uuid.UUID `gorm:"type:uuid;index"`
	SignedAt   *time.Time
}

// TableName returns the table name for MentionModel
func (MentionModel) TableName() string {
	return "mentions"
}

// ToDomain converts MentionModel to a domain Mention
func (m *MentionModel) ToDomain() *registry.Mention {
	mention := &registry.Mention{
		BaseEntity:   m.BaseModel.ToDomain(),
		ActID:        m.ActID,
		TypeID:       m.TypeID,
		OrderNumber:  m.OrderNumber,
		ExtractOrder: m.ExtractOrder,
		Status:       registry.MentionStatus(m.Status),
		Origin:       registry.MentionOrigin(m.Origin),
		Texts: registry.MentionTexts{
			Mention:      m.MentionText,
			Apposition:   m.AppositionText,
			Authority:    m.AuthorityText,
			Delivery:     m.DeliveryText,
			Multilingual: m.MultilingualText,
		},
		AppositionCity:   m.AppositionCity,
		AppositionRegion: m.AppositionRegion,
		AppositionDate:   m.AppositionDate,
		DocumentID:       m.DocumentID,
		SignedAt:         m.SignedAt,
	}
	if m.AuthorityName != nil {
		mention.Authority = &registry.Authority{
			Name:             *m.AuthorityName,
			OfficerFirstName: m.AuthorityOfficerFirst,
			OfficerLastName:  m.AuthorityOfficerLast,
		}
	}
	return mention
}

// FromDomain populates MentionModel from a domain Mention
func (m *MentionModel) FromDomain(mention *registry.Mention, actID uuid.UUID) {
	m.FromDomainBaseEntity(mention.BaseEntity)
	m.ActID = actID
	m.TypeID = mention.TypeID
	m.OrderNumber = mention.OrderNumber
	m.ExtractOrder = mention.ExtractOrder
	m.Status = string(mention.Status)
	m.Origin = string(mention.Origin)
	m.MentionText = mention.Texts.Mention
	m.AppositionText = mention.Texts.Apposition
	m.AuthorityText = mention.Texts.Authority
	m.DeliveryText = mention.Texts.Delivery
	m.MultilingualText = mention.Texts.Multilingual
	m.AppositionCity = mention.AppositionCity
	m.AppositionRegion = mention.AppositionRegion
	m.AppositionDate = mention.AppositionDate
	m.DocumentID = mention.DocumentID
	m.SignedAt = mention.SignedAt
	if mention.Authority != nil {
		name := mention.Authority.Name
		m.AuthorityName = &name
		m.AuthorityOfficerFirst = mention.Authority.OfficerFirstName
		m.AuthorityOfficerLast = mention.Authority.OfficerLastName
	} else {
		m.AuthorityName = nil
		m.AuthorityOfficerFirst = nil
		m.AuthorityOfficerLast = nil
	}
}

// DocumentMentionsModel is the persistence model for composed mention documents
type DocumentMentionsModel struct {
	BaseModel
	ActID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"type:varchar(16);not null;index"`
	SequenceNumber int       `gorm:"not null"`
	Container      *string   `gorm:"type:varchar(255)"`
	Reference      *string   `gorm:"type:varchar(1024)"`
}

// TableName returns the table name for DocumentMentionsModel
func (DocumentMentionsModel) TableName() string {
	return "document_mentions"
}

// ToDomain converts DocumentMentionsModel to a domain DocumentMentions
func (m *DocumentMentionsModel) ToDomain() *registry.DocumentMentions {
	return &registry.DocumentMentions{
		BaseEntity:     m.BaseModel.ToDomain(),
		ActID:          m.ActID,
		Status:         registry.DocumentStatus(m.Status),
		SequenceNumber: m.SequenceNumber,
		Container:      m.Container,
		Reference:      m.Reference,
	}
}

// FromDomain populates DocumentMentionsModel from a domain DocumentMentions
func (m *DocumentMentionsModel) FromDomain(d *registry.DocumentMentions) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.ActID = d.ActID
	m.Status = string(d.Status)
	m.SequenceNumber = d.SequenceNumber
	m.Container = d.Container
	m.Reference = d.Reference
}

// MarginalAnalysisModel is the persistence model for marginal analyses
type MarginalAnalysisModel struct {
	BaseModel
	ActID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(16);not null;index"`
	SignedAt        *time.Time
	LastName        *string `gorm:"type:varchar(255)"`
	OtherLastNames  *string `gorm:"type:varchar(255)"`
	FirstNames      *string `gorm:"type:varchar(255)"`
	OtherFirstNames *string `gorm:"type:varchar(255)"`
	ResolvedByFirst *string `gorm:"type:varchar(255)"`
	ResolvedByLast  *string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for MarginalAnalysisModel
func (MarginalAnalysisModel) TableName() string {
	return "marginal_analyses"
}

// ToDomain converts MarginalAnalysisModel to a domain MarginalAnalysis
func (m *MarginalAnalysisModel) ToDomain() *registry.MarginalAnalysis {
	return &registry.MarginalAnalysis{
		BaseEntity:      m.BaseModel.ToDomain(),
		ActID:           m.ActID,
		Status:          registry.AnalysisStatus(m.Status),
		SignedAt:        m.SignedAt,
		LastName:        m.LastName,
		OtherLastNames:  m.OtherLastNames,
		FirstNames:      m.FirstNames,
		OtherFirstNames: m.OtherFirstNames,
		ResolvedByFirst: m.ResolvedByFirst,
		ResolvedByLast:  m.ResolvedByLast,
	}
}

// PersonModel is the persistence model for act titulars
type PersonModel struct {
	BaseModel
	ActID           uuid.UUID `gorm:"type:uuid;not null;index"`
	LastName        string    `gorm:"type:varchar(255);not null"`
	OtherLastNames  *string   `gorm:"type:varchar(255)"`
	FirstNames      string    `gorm:"type:varchar(255);not null"`
	OtherFirstNames *string   `gorm:"type:varchar(255)"`
}

// TableName returns the table name for PersonModel
func (PersonModel) TableName() string {
	return "persons"
}

// ToDomain converts PersonModel to a domain Person
func (m *PersonModel) ToDomain() *registry.Person {
	return &registry.Person{
		BaseEntity:      m.BaseModel.ToDomain(),
		ActID:           m.ActID,
		LastName:        m.LastName,
		OtherLastNames:  m.OtherLastNames,
		FirstNames:      m.FirstNames,
		OtherFirstNames: m.OtherFirstNames,
	}
}

// FromDomain populates PersonModel from a domain Person
func (m *PersonModel) FromDomain(p *registry.Person) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ActID = p.ActID
	m.LastName = p.LastName
	m.OtherLastNames = p.OtherLastNames
	m.FirstNames = p.FirstNames
	m.OtherFirstNames = p.OtherFirstNames
}

// PreSignatureEvidenceModel archives the composed content handed to the
// signing step, keyed by document
type PreSignatureEvidenceModel struct {
	BaseModel
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Content    []byte    `gorm:"type:bytea;not null"`
}

// TableName returns the table name for PreSignatureEvidenceModel
func (PreSignatureEvidenceModel) TableName() string {
	return "pre_signature_evidence"
}

// PostSignatureEvidenceModel archives the audit record of one signature
type PostSignatureEvidenceModel struct {
	BaseModel
	DocumentID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ActID             uuid.UUID `gorm:"type:uuid;not null;index"`
	OfficerExternalID string    `gorm:"type:varchar(255);not null"`
	Container         string    `gorm:"type:varchar(255);not null"`
	Reference         string    `gorm:"type:varchar(1024);not null"`
	Timestamp         time.Time `gorm:"not null"`
	SignedContentHash string    `gorm:"type:varchar(64);not null"`
}

// TableName returns the table name for PostSignatureEvidenceModel
func (PostSignatureEvidenceModel) TableName() string {
	return "post_signature_evidence"
}
