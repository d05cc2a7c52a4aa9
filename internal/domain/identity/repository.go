package identity

import "context"

// OfficerRepository defines the interface for officer lookup
type OfficerRepository interface {
	// FindByExternalID finds an officer by the identifier carried in the
	// authentication token. Returns shared.ErrNotFound when unknown.
	FindByExternalID(ctx context.Context, externalID string) (*Officer, error)
}
