package persistence

import (
	"context"

	appmention "github.com/civilregistry/backend/internal/application/mention"
	"github.com/civilregistry/backend/internal/domain/registry"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appmention.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a
// transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Acts returns the act repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Acts() registry.ActRepository {
	return NewGormActRepository(r.tx)
}

// Mentions returns the mention repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Mentions() registry.MentionRepository {
	return NewGormMentionRepository(r.tx)
}

// Documents returns the document repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Documents() registry.DocumentMentionsRepository {
	return NewGormDocumentMentionsRepository(r.tx)
}

// Analyses returns the analysis repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Analyses() registry.AnalysisRepository {
	return NewGormAnalysisRepository(r.tx)
}

// Persons returns the person repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Persons() registry.PersonRepository {
	return NewGormPersonRepository(r.tx)
}

// Evidence returns the evidence repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Evidence() registry.EvidenceRepository {
	return NewGormEvidenceRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appmention.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appmention.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
