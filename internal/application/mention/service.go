package mention

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/civilregistry/backend/internal/domain/identity"
	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MentionService orchestrates the mention lifecycle: bulk reconciliation,
// pre-signature document preparation, the post-signature multi-entity commit
// and draft cleanup on abandonment. Every operation re-reads the aggregates
// it needs from their stores; the service holds no long-lived entity state.
type MentionService struct {
	officers  identity.OfficerRepository
	acts      registry.ActRepository
	mentions  registry.MentionRepository
	documents registry.DocumentMentionsRepository
	evidence  registry.EvidenceRepository
	scope     TransactionScope
	composer  Composer
	monitor   SignatureMonitor
	tsa       TimestampAuthority
	storage   ObjectStorage
	window    SigningWindow
	clock     shared.Clock
	logger    *zap.Logger
}

// NewMentionService creates a new MentionService
func NewMentionService(
	officers identity.OfficerRepository,
	acts registry.ActRepository,
	mentions registry.MentionRepository,
	documents registry.DocumentMentionsRepository,
	evidence registry.EvidenceRepository,
	scope TransactionScope,
	composer Composer,
	monitor SignatureMonitor,
	tsa TimestampAuthority,
	storage ObjectStorage,
	window SigningWindow,
	clock shared.Clock,
	logger *zap.Logger,
) *MentionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &MentionService{
		officers:  officers,
		acts:      acts,
		mentions:  mentions,
		documents: documents,
		evidence:  evidence,
		scope:     scope,
		composer:  composer,
		monitor:   monitor,
		tsa:       tsa,
		storage:   storage,
		window:    window,
		clock:     clock,
		logger:    logger,
	}
}

// GetMentions returns the mentions of an act, optionally filtered by status.
func (s *MentionService) GetMentions(ctx context.Context, actID uuid.UUID, status *registry.MentionStatus) ([]registry.Mention, error) {
	if status != nil {
		return s.mentions.FindByActAndStatus(ctx, actID, *status)
	}
	return s.mentions.FindByAct(ctx, actID)
}

// ReconcileMentions reconciles a proposed list of mentions against the
// persisted set of an act. Unmatched incoming mentions are inserted with
// SYSTEM origin, matched ones are updated preserving the persisted origin,
// and persisted mentions absent from the input are deleted only when they are
// delivery artifacts. Insert, update and delete apply in one atomic unit.
func (s *MentionService) ReconcileMentions(ctx context.Context, actID uuid.UUID, officerExternalID string, incoming []registry.Mention) error {
	officer, err := s.officerByExternalID(ctx, officerExternalID)
	if err != nil {
		return err
	}
	if err := officer.RequireRight(identity.RightDeliver); err != nil {
		return err
	}

	for i := range incoming {
		if !incoming[i].HasType() {
			return shared.NewDomainError("INVALID_MENTION_TYPE",
				fmt.Sprintf("a mention without a mention type was submitted for act %s", actID))
		}
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Acts().Exists(ctx, actID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewDomainError("ACT_NOT_FOUND", fmt.Sprintf("no act %s", actID))
		}

		persisted, err := repos.Mentions().FindByAct(ctx, actID)
		if err != nil {
			return err
		}
		persistedByID := make(map[uuid.UUID]*registry.Mention, len(persisted))
		for i := range persisted {
			persistedByID[persisted[i].ID] = &persisted[i]
		}

		var inserts, updates []*registry.Mention
		matched := make(map[uuid.UUID]bool, len(incoming))
		for i := range incoming {
			m := &incoming[i]
			if existing, ok := persistedByID[m.ID]; ok {
				// The persisted origin wins: a reconciliation pass must not
				// rewrite where a mention came from.
				m.Origin = existing.Origin
				updates = append(updates, m)
				matched[m.ID] = true
			} else {
				m.Origin = registry.OriginSystem
				if m.ID == uuid.Nil {
					m.BaseEntity = shared.NewBaseEntity()
				}
				inserts = append(inserts, m)
			}
		}

		var deleteIDs []uuid.UUID
		for i := range persisted {
			if matched[persisted[i].ID] {
				continue
			}
			if persisted[i].IsDeliveryArtifact() {
				deleteIDs = append(deleteIDs, persisted[i].ID)
			}
		}

		if len(updates) > 0 {
			nature, err := repos.Acts().NatureByID(ctx, actID)
			if err != nil {
				return err
			}
			for _, m := range updates {
				if err := repos.Mentions().Update(ctx, m, string(nature)); err != nil {
					return err
				}
			}
		}
		for _, m := range inserts {
			if err := repos.Mentions().Add(ctx, m, actID); err != nil {
				return err
			}
		}
		if len(deleteIDs) > 0 {
			if err := repos.Mentions().Delete(ctx, deleteIDs); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrepareSignatureDocument implements the pre-signature sequence: gates
// (availability, rights, signing window), act validation, stamping of draft
// mentions, composability checks, composition with the next document sequence
// number, get-or-create of the act's single NON_SIGNED document record,
// pre-signature evidence capture, and finally the composed bytes encoded in
// base64 for transport to the external signing step.
func (s *MentionService) PrepareSignatureDocument(ctx context.Context, actID uuid.UUID, officerExternalID string, sig Signature) (string, error) {
	if err := s.assertSignatureAvailable(ctx); err != nil {
		return "", err
	}

	officer, err := s.officerByExternalID(ctx, officerExternalID)
	if err != nil {
		return "", err
	}
	if err := officer.RequireRight(identity.RightSignMention); err != nil {
		return "", err
	}
	if err := s.window.AssertOutside(officer, s.clock.Now()); err != nil {
		return "", err
	}

	act, err := s.signedActByID(ctx, actID)
	if err != nil {
		return "", err
	}

	if err := s.stampDraftMentions(ctx, act, officer, sig); err != nil {
		return "", err
	}

	if err := validateComposable(act); err != nil {
		return "", err
	}

	// Computed once and reused for both the printed numbering and the
	// document record, so the two can never disagree.
	sequence, err := s.nextDocumentSequence(ctx, actID)
	if err != nil {
		return "", err
	}

	composed, err := s.composer.ComposeMentionsDocument(ctx, act, sequence)
	if err != nil {
		return "", err
	}

	document, err := s.obtainUnsignedDocument(ctx, actID, sequence)
	if err != nil {
		return "", err
	}

	if err := s.evidence.RecordPreSignature(ctx, document.ID, composed); err != nil {
		return "", err
	}

	s.logger.Info("mention document composed",
		zap.String("actId", actID.String()),
		zap.String("documentId", document.ID.String()),
		zap.Int("sequence", sequence))

	return base64.StdEncoding.EncodeToString(composed), nil
}

// IntegrateSignedDocument implements the post-signature commit. The
// augmentation call stays outside the transaction: its failures are handled
// by the timestamping subsystem's own blocking, with automatic unblocking
// once the service recovers. Every other technical failure inside the commit
// is logged, creates a review block for human analysis, and is re-raised
// unchanged; the transaction rolls back so no partial mutation survives.
func (s *MentionService) IntegrateSignedDocument(ctx context.Context, actID uuid.UUID, officerExternalID string, signedContent []byte) error {
	officer, err := s.officerByExternalID(ctx, officerExternalID)
	if err != nil {
		return err
	}
	if err := officer.RequireRight(identity.RightSignMention); err != nil {
		return err
	}

	act, err := s.signedActByID(ctx, actID)
	if err != nil {
		return err
	}

	// Checked after rights and act validation so nothing is wasted on an
	// unavailable signer, but before any numbering-consuming step.
	if err := s.assertSignatureAvailable(ctx); err != nil {
		return err
	}

	augmented, err := s.tsa.AugmentToLongTermValidation(ctx, signedContent)
	if err != nil {
		return shared.NewTechnicalError("TIMESTAMP_AUGMENTATION_FAILED",
			fmt.Sprintf("augmentation to long-term validation failed for act %s", actID), err)
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		result, err := s.tsa.ValidateAndExtract(ctx, augmented)
		if err != nil {
			return shared.NewTechnicalError("TIMESTAMP_VALIDATION_FAILED",
				fmt.Sprintf("timestamp validation failed for act %s", actID), err)
		}

		document, err := repos.Documents().FindByActAndStatus(ctx, actID, registry.DocumentStatusNonSigned)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewTechnicalError("NO_UNSIGNED_DOCUMENT",
					fmt.Sprintf("no NON_SIGNED document record for act %s", actID), nil)
			}
			return err
		}

		storageResult, err := s.storage.StoreSignedDocument(ctx, result.Content, document.ID)
		if err != nil {
			return err
		}

		drafts := act.DraftMentions()
		draftIDs := make([]uuid.UUID, len(drafts))
		for i, m := range drafts {
			draftIDs[i] = m.ID
		}
		if err := repos.Mentions().MarkSigned(ctx, draftIDs, result.Timestamp, document.ID); err != nil {
			return err
		}
		if err := repos.Documents().MarkSigned(ctx, actID, storageResult.Container, storageResult.Reference); err != nil {
			return err
		}

		nonValid, err := repos.Analyses().NonValidIDsByAct(ctx, actID)
		if err != nil {
			return err
		}
		switch {
		case len(nonValid) == 1:
			if err := repos.Analyses().MarkResolved(ctx, actID, s.clock.Now(), officer.FirstName, officer.LastName); err != nil {
				return err
			}
		case len(nonValid) > 1:
			return shared.NewDomainError("MULTIPLE_NON_VALID_ANALYSES",
				fmt.Sprintf("act %s has %d non-valid marginal analyses", actID, len(nonValid)))
		}

		latest, err := repos.Analyses().LatestSignedByAct(ctx, actID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if latest != nil {
			if err := repos.Persons().UpdateFromAnalysis(ctx, act.Persons, latest); err != nil {
				return err
			}
		}

		hash := sha256.Sum256(signedContent)
		if err := repos.Evidence().RecordPostSignature(ctx, registry.PostSignatureEvidence{
			DocumentID:        document.ID,
			ActID:             actID,
			OfficerExternalID: officer.ExternalID,
			Storage:           storageResult,
			Timestamp:         result.Timestamp,
			SignedContentHash: hex.EncodeToString(hash[:]),
		}); err != nil {
			return err
		}

		day, err := officer.LocalDate(s.clock.Now())
		if err != nil {
			return err
		}
		return repos.Acts().UpdateLastModified(ctx, actID, day)
	})

	if err != nil {
		// A business rejection is the caller's to correct. Anything else —
		// typed technical errors and untyped storage or persistence
		// failures alike — left the commit half done and needs operator
		// review before the act can be trusted again.
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		s.logger.Error("post-signature commit failed, creating review block",
			zap.String("actId", actID.String()),
			zap.Error(err))
		if blockErr := s.tsa.CreateReviewBlock(ctx); blockErr != nil {
			s.logger.Error("failed to create review block", zap.Error(blockErr))
		}
		return err
	}

	s.logger.Info("signed mention document integrated",
		zap.String("actId", actID.String()))
	return nil
}

// AbandonDraftMentions is the rollback path when a user cancels a
// delivery-driven mention update: it deletes the act's delivery artifacts and
// any non-valid marginal analyses, in one atomic unit.
func (s *MentionService) AbandonDraftMentions(ctx context.Context, actID uuid.UUID, officerExternalID string) error {
	officer, err := s.officerByExternalID(ctx, officerExternalID)
	if err != nil {
		return err
	}
	if err := officer.RequireRight(identity.RightUpdateAct); err != nil {
		return err
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		all, err := repos.Mentions().FindByAct(ctx, actID)
		if err != nil {
			return err
		}
		var deleteIDs []uuid.UUID
		for i := range all {
			if all[i].IsDeliveryArtifact() {
				deleteIDs = append(deleteIDs, all[i].ID)
			}
		}
		if len(deleteIDs) > 0 {
			if err := repos.Mentions().Delete(ctx, deleteIDs); err != nil {
				return err
			}
		}
		return repos.Analyses().DeleteNonValid(ctx, actID)
	})
}

// CreateDraftMentions inserts freshly authored mentions for an act. Supplied
// relative orders are rebased on the act's highest signed mention order so
// their relative ordering is preserved; each mention is normalized and
// inserted individually.
func (s *MentionService) CreateDraftMentions(ctx context.Context, actID uuid.UUID, mentions []registry.Mention) error {
	baseOrder, err := s.mentions.HighestSignedOrder(ctx, actID)
	if err != nil {
		return err
	}
	for i := range mentions {
		mentions[i].PrepareForCreation(baseOrder)
		if err := s.mentions.Add(ctx, &mentions[i], actID); err != nil {
			return err
		}
	}
	return nil
}

func (s *MentionService) officerByExternalID(ctx context.Context, externalID string) (*identity.Officer, error) {
	officer, err := s.officers.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACTOR_NOT_FOUND",
				fmt.Sprintf("no officer with external id %s", externalID))
		}
		return nil, err
	}
	return officer, nil
}

func (s *MentionService) assertSignatureAvailable(ctx context.Context) error {
	status, err := s.monitor.Status(ctx)
	if err != nil {
		return shared.NewTechnicalError("SIGNATURE_UNAVAILABLE", "signature subsystem status unknown", err)
	}
	if status != AvailabilityAvailable {
		return shared.NewTechnicalError("SIGNATURE_UNAVAILABLE", "signature subsystem is unavailable", nil)
	}
	return nil
}

// signedActByID loads the act with its mentions and persons and requires it
// to be in the SIGNED workflow state.
func (s *MentionService) signedActByID(ctx context.Context, actID uuid.UUID) (*registry.Act, error) {
	act, err := s.acts.FindSignedByID(ctx, actID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ACT_SIGNED_NOT_FOUND",
				fmt.Sprintf("no signed act %s", actID))
		}
		return nil, err
	}
	if !act.IsSigned() {
		return nil, shared.NewDomainError("INCOHERENT_ACT_STATUS",
			fmt.Sprintf("act %s is in status %s, not SIGNED", actID, act.Status))
	}
	return act, nil
}

// stampDraftMentions stamps apposition place and date on every draft mention
// of the act, and the signing officer on mentions carrying an authority
// block, persisting each stamped mention.
func (s *MentionService) stampDraftMentions(ctx context.Context, act *registry.Act, officer *identity.Officer, sig Signature) error {
	date, err := officer.LocalDate(s.clock.Now())
	if err != nil {
		return err
	}
	city, region := "", ""
	if officer.Address != nil {
		city = officer.Address.City
		region = officer.Address.Region
	}
	for _, m := range act.DraftMentions() {
		m.StampApposition(city, region, date)
		m.StampAuthority(sig.OfficerFirstName, sig.OfficerLastName)
		if err := s.mentions.Add(ctx, m, act.ID); err != nil {
			return err
		}
	}
	return nil
}

func validateComposable(act *registry.Act) error {
	if !act.HasContent() {
		return shared.NewDomainError("ACT_EMPTY",
			fmt.Sprintf("act %s has neither images nor body text", act.ID))
	}
	if !act.Electronic {
		return shared.NewDomainError("ACT_NOT_ELECTRONIC",
			fmt.Sprintf("act %s is not an electronic act", act.ID))
	}
	if len(act.SignableMentions()) == 0 {
		return shared.NewDomainError("NO_MENTION_TO_SIGN",
			fmt.Sprintf("act %s has no draft mention with mention text", act.ID))
	}
	return nil
}

// nextDocumentSequence allocates the next 1-based document sequence number
// for the act. Numbers are monotonic and never reused; gaps left by failed
// attempts are accepted.
func (s *MentionService) nextDocumentSequence(ctx context.Context, actID uuid.UUID) (int, error) {
	highest, err := s.mentions.HighestDocumentSequence(ctx, actID)
	if err != nil {
		return 0, err
	}
	return highest + 1, nil
}

// obtainUnsignedDocument returns the act's single NON_SIGNED document record,
// creating it when absent. A concurrent creation loses the race on the
// store's uniqueness guarantee and falls back to the winner's record.
func (s *MentionService) obtainUnsignedDocument(ctx context.Context, actID uuid.UUID, sequence int) (*registry.DocumentMentions, error) {
	document, err := s.documents.FindByActAndStatus(ctx, actID, registry.DocumentStatusNonSigned)
	if err == nil {
		return document, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	document = registry.NewDocumentMentions(actID, sequence)
	if err := s.documents.Save(ctx, document); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.documents.FindByActAndStatus(ctx, actID, registry.DocumentStatusNonSigned)
		}
		return nil, err
	}
	return document, nil
}
