package registry

import (
	"sort"

	"github.com/civilregistry/backend/internal/domain/shared"
)

// ActStatus represents the workflow status of a civil-status act
type ActStatus string

const (
	ActStatusDraft  ActStatus = "DRAFT"
	ActStatusSigned ActStatus = "SIGNED"
)

// IsValid checks if the status is a valid ActStatus
func (s ActStatus) IsValid() bool {
	switch s {
	case ActStatusDraft, ActStatusSigned:
		return true
	}
	return false
}

// String returns the string representation of ActStatus
func (s ActStatus) String() string {
	return string(s)
}

// ActNature identifies the kind of civil-status record (birth, marriage, ...)
type ActNature string

const (
	ActNatureBirth    ActNature = "BIRTH"
	ActNatureMarriage ActNature = "MARRIAGE"
	ActNatureDeath    ActNature = "DEATH"
)

// Act is a civil-status record. It owns its mentions and titular persons by
// identity reference; repositories load them alongside the act.
type Act struct {
	shared.BaseEntity
	Nature     ActNature
	Status     ActStatus
	Electronic bool
	BodyText   *string
	Images     []string
	Mentions   []Mention
	Persons    []Person
}

// IsSigned reports whether the act is in the SIGNED workflow state.
func (a *Act) IsSigned() bool {
	return a.Status == ActStatusSigned
}

// HasContent reports whether the act carries either scanned images or body
// text. An act with neither is not eligible for document composition.
func (a *Act) HasContent() bool {
	if len(a.Images) > 0 {
		return true
	}
	return a.BodyText != nil && *a.BodyText != ""
}

// DraftMentions returns pointers to every mention currently in DRAFT status.
func (a *Act) DraftMentions() []*Mention {
	var drafts []*Mention
	for i := range a.Mentions {
		if a.Mentions[i].Status == MentionStatusDraft {
			drafts = append(drafts, &a.Mentions[i])
		}
	}
	return drafts
}

// SignableMentions returns the draft mentions carrying real mention text,
// sorted by order number. These are the mentions a composed document bundles.
func (a *Act) SignableMentions() []*Mention {
	var signable []*Mention
	for i := range a.Mentions {
		if a.Mentions[i].IsSignable() {
			signable = append(signable, &a.Mentions[i])
		}
	}
	sort.Slice(signable, func(i, j int) bool {
		return signable[i].OrderNumber < signable[j].OrderNumber
	})
	return signable
}
