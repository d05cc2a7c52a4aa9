package models

import (
	"github.com/civilregistry/backend/internal/domain/identity"
)

// OfficerModel is the persistence model for civil-status officers,
// provisioned from the rights-management system
type OfficerModel struct {
	BaseModel
	ExternalID  string   `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName   string   `gorm:"type:varchar(255);not null"`
	LastName    string   `gorm:"type:varchar(255);not null"`
	ServiceName string   `gorm:"type:varchar(255);not null"`
	City        *string  `gorm:"type:varchar(255)"`
	Region      *string  `gorm:"type:varchar(255)"`
	Country     *string  `gorm:"type:varchar(255)"`
	TimeZone    *string  `gorm:"type:varchar(64)"`
	Rights      []string `gorm:"serializer:json"`
}

// TableName returns the table name for OfficerModel
func (OfficerModel) TableName() string {
	return "officers"
}

// ToDomain converts OfficerModel to a domain Officer
func (m *OfficerModel) ToDomain() *identity.Officer {
	officer := &identity.Officer{
		BaseEntity:  m.BaseModel.ToDomain(),
		ExternalID:  m.ExternalID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		ServiceName: m.ServiceName,
	}
	// A service address is only meaningful with at least a city.
	if m.City != nil {
		officer.Address = &identity.ServiceAddress{
			City:     *m.City,
			Region:   deref(m.Region),
			Country:  deref(m.Country),
			TimeZone: deref(m.TimeZone),
		}
	}
	officer.Rights = make([]identity.Right, len(m.Rights))
	for i, r := range m.Rights {
		officer.Rights[i] = identity.Right(r)
	}
	return officer
}

// FromDomain populates OfficerModel from a domain Officer
func (m *OfficerModel) FromDomain(o *identity.Officer) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.ExternalID = o.ExternalID
	m.FirstName = o.FirstName
	m.LastName = o.LastName
	m.ServiceName = o.ServiceName
	if o.Address != nil {
		m.City = &o.Address.City
		m.Region = &o.Address.Region
		m.Country = &o.Address.Country
		m.TimeZone = &o.Address.TimeZone
	} else {
		m.City, m.Region, m.Country, m.TimeZone = nil, nil, nil, nil
	}
	m.Rights = make([]string, len(o.Rights))
	for i, r := range o.Rights {
		m.Rights[i] = string(r)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
