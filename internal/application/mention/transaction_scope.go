package mention

import (
	"context"

	"github.com/civilregistry/backend/internal/domain/registry"
)

// TransactionScope provides transactional access to the registry
// repositories. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every registry repository the
// mention lifecycle touches, all sharing the same underlying transaction.
// Reconciliation, the post-signature commit and draft abandonment each span
// several aggregates (mentions, document record, analyses, persons, act) and
// must not leave partial writes visible on any failure path.
type TransactionalRepositories interface {
	// Acts returns the act repository scoped to the current transaction
	Acts() registry.ActRepository
	// Mentions returns the mention repository scoped to the current transaction
	Mentions() registry.MentionRepository
	// Documents returns the composed-document repository scoped to the current transaction
	Documents() registry.DocumentMentionsRepository
	// Analyses returns the marginal-analysis repository scoped to the current transaction
	Analyses() registry.AnalysisRepository
	// Persons returns the person repository scoped to the current transaction
	Persons() registry.PersonRepository
	// Evidence returns the evidence repository scoped to the current transaction
	Evidence() registry.EvidenceRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	ActRepo      registry.ActRepository
	MentionRepo  registry.MentionRepository
	DocumentRepo registry.DocumentMentionsRepository
	AnalysisRepo registry.AnalysisRepository
	PersonRepo   registry.PersonRepository
	EvidenceRepo registry.EvidenceRepository
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Acts returns the act repository.
func (s *NoOpTransactionScope) Acts() registry.ActRepository { return s.ActRepo }

// Mentions returns the mention repository.
func (s *NoOpTransactionScope) Mentions() registry.MentionRepository { return s.MentionRepo }

// Documents returns the composed-document repository.
func (s *NoOpTransactionScope) Documents() registry.DocumentMentionsRepository {
	return s.DocumentRepo
}

// Analyses returns the marginal-analysis repository.
func (s *NoOpTransactionScope) Analyses() registry.AnalysisRepository { return s.AnalysisRepo }

// Persons returns the person repository.
func (s *NoOpTransactionScope) Persons() registry.PersonRepository { return s.PersonRepo }

// Evidence returns the evidence repository.
func (s *NoOpTransactionScope) Evidence() registry.EvidenceRepository { return s.EvidenceRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
