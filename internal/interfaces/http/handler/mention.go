package handler

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appmention "github.com/civilregistry/backend/internal/application/mention"
	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/interfaces/http/dto"
)

// MentionService is the application surface the mention endpoints depend on.
type MentionService interface {
	GetMentions(ctx context.Context, actID uuid.UUID, status *registry.MentionStatus) ([]registry.Mention, error)
	ReconcileMentions(ctx context.Context, actID uuid.UUID, officerExternalID string, incoming []registry.Mention) error
	CreateDraftMentions(ctx context.Context, actID uuid.UUID, mentions []registry.Mention) error
	AbandonDraftMentions(ctx context.Context, actID uuid.UUID, officerExternalID string) error
	PrepareSignatureDocument(ctx context.Context, actID uuid.UUID, officerExternalID string, sig appmention.Signature) (string, error)
	IntegrateSignedDocument(ctx context.Context, actID uuid.UUID, officerExternalID string, signedContent []byte) error
}

var _ MentionService = (*appmention.MentionService)(nil)

// MentionHandler handles the mention lifecycle endpoints of an act.
type MentionHandler struct {
	BaseHandler
	service MentionService
	logger  *zap.Logger
}

// NewMentionHandler creates a new MentionHandler
func NewMentionHandler(service MentionService, logger *zap.Logger) *MentionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MentionHandler{service: service, logger: logger}
}

// RegisterRoutes registers mention routes on the given group
func (h *MentionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	acts := rg.Group("/acts/:actID/mentions")
	{
		acts.GET("", h.List)
		acts.PUT("", h.Reconcile)
		acts.POST("", h.CreateDrafts)
		acts.DELETE("/drafts", h.AbandonDrafts)
		acts.POST("/document", h.PrepareDocument)
		acts.POST("/signed-document", h.IntegrateSignedDocument)
	}
}

// List returns the mentions of an act, optionally filtered by status.
func (h *MentionHandler) List(c *gin.Context) {
	actID, ok := h.actID(c)
	if !ok {
		return
	}

	var status *registry.MentionStatus
	if raw := c.Query("status"); raw != "" {
		parsed := registry.MentionStatus(raw)
		if !parsed.IsValid() {
			h.BadRequest(c, "Unknown mention status: "+raw)
			return
		}
		status = &parsed
	}

	mentions, err := h.service.GetMentions(c.Request.Context(), actID, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewMentionResponses(mentions))
}

// Reconcile applies a full mention set from an external delivery pass.
func (h *MentionHandler) Reconcile(c *gin.Context) {
	actID, ok := h.actID(c)
	if !ok {
		return
	}
	officerID, err := getOfficerExternalID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req dto.ReconcileMentionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	incoming := make([]registry.Mention, 0, len(req.Mentions))
	for _, m := range req.Mentions {
		incoming = append(incoming, m.ToDomain(actID))
	}

	if err := h.service.ReconcileMentions(c.Request.Context(), actID, officerID, incoming); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateDrafts appends hand-authored draft mentions to an act.
func (h *MentionHandler) CreateDrafts(c *gin.Context) {
	actID, ok := h.actID(c)
	if !ok {
		return
	}

	var req dto.CreateDraftMentionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	drafts := make([]registry.Mention, 0, len(req.Mentions))
	for _, m := range req.Mentions {
		drafts = append(drafts, m.ToDomain(actID))
	}

	if err := h.service.CreateDraftMentions(c.Request.Context(), actID, drafts); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, nil)
}

// AbandonDrafts removes the delivery artifacts of an act's draft mentions.
func (h *MentionHandler) AbandonDrafts(c *gin.Context) {
	actID, ok := h.actID(c)
	if !ok {
		return
	}
	officerID, err := getOfficerExternalID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	if err := h.service.AbandonDraftMentions(c.Request.Context(), actID, officerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// PrepareDocument composes and stores the unsigned mention document and
// returns it base64-encoded for the signing subsystem.
func (h *MentionHandler) PrepareDocument(c *gin.Context) {
	actID, ok := h.actID(c)
	if !ok {
		return
	}
	officerID, err := getOfficerExternalID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req dto.PrepareDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	document, err := h.service.PrepareSignatureDocument(c.Request.Context(), actID, officerID, appmention.Signature{
		OfficerFirstName: req.OfficerFirstName,
		OfficerLastName:  req.OfficerLastName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.PrepareDocumentResponse{Document: document})
}

// IntegrateSignedDocument receives the signed document back from the signing
// subsystem and commits the signature across the act.
func (h *MentionHandler) IntegrateSignedDocument(c *gin.Context) {
	actID, ok := h.actID(c)
	if !ok {
		return
	}
	officerID, err := getOfficerExternalID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req dto.SignedDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Document)
	if err != nil {
		h.BadRequest(c, "Document is not valid base64")
		return
	}
	if len(content) == 0 {
		h.BadRequest(c, "Document is empty")
		return
	}

	if err := h.service.IntegrateSignedDocument(c.Request.Context(), actID, officerID, content); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// actID parses the act ID path parameter, responding 400 on failure.
func (h *MentionHandler) actID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("actID"))
	if err != nil {
		h.BadRequest(c, "Invalid act ID")
		return uuid.Nil, false
	}
	return id, true
}
