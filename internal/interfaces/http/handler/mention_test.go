package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmention "github.com/civilregistry/backend/internal/application/mention"
	"github.com/civilregistry/backend/internal/domain/registry"
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/civilregistry/backend/internal/interfaces/http/dto"
	"github.com/civilregistry/backend/internal/interfaces/http/middleware"
)

type mockMentionService struct {
	mentions  []registry.Mention
	returnErr error

	lastActID     uuid.UUID
	lastOfficerID string
	lastStatus    *registry.MentionStatus
	lastIncoming  []registry.Mention
	lastSignature appmention.Signature
	lastContent   []byte
	document      string
}

func (m *mockMentionService) GetMentions(ctx context.Context, actID uuid.UUID, status *registry.MentionStatus) ([]registry.Mention, error) {
	m.lastActID, m.lastStatus = actID, status
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	return m.mentions, nil
}

func (m *mockMentionService) ReconcileMentions(ctx context.Context, actID uuid.UUID, officerExternalID string, incoming []registry.Mention) error {
	m.lastActID, m.lastOfficerID, m.lastIncoming = actID, officerExternalID, incoming
	return m.returnErr
}

func (m *mockMentionService) CreateDraftMentions(ctx context.Context, actID uuid.UUID, mentions []registry.Mention) error {
	m.lastActID, m.lastIncoming = actID, mentions
	return m.returnErr
}

func (m *mockMentionService) AbandonDraftMentions(ctx context.Context, actID uuid.UUID, officerExternalID string) error {
	m.lastActID, m.lastOfficerID = actID, officerExternalID
	return m.returnErr
}

func (m *mockMentionService) PrepareSignatureDocument(ctx context.Context, actID uuid.UUID, officerExternalID string, sig appmention.Signature) (string, error) {
	m.lastActID, m.lastOfficerID, m.lastSignature = actID, officerExternalID, sig
	if m.returnErr != nil {
		return "", m.returnErr
	}
	return m.document, nil
}

func (m *mockMentionService) IntegrateSignedDocument(ctx context.Context, actID uuid.UUID, officerExternalID string, signedContent []byte) error {
	m.lastActID, m.lastOfficerID, m.lastContent = actID, officerExternalID, signedContent
	return m.returnErr
}

func setupMentionRouter(svc MentionService, officerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	if officerID != "" {
		api.Use(func(c *gin.Context) {
			c.Set(middleware.OfficerExternalIDKey, officerID)
		})
	}
	NewMentionHandler(svc, nil).RegisterRoutes(api)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListMentions(t *testing.T) {
	actID := uuid.New()
	text := "Mentionné le divorce."
	svc := &mockMentionService{
		mentions: []registry.Mention{
			{
				BaseEntity:  shared.BaseEntity{ID: uuid.New()},
				ActID:       actID,
				OrderNumber: 1,
				Status:      registry.MentionStatusDraft,
				Origin:      registry.OriginExternal,
				Texts:       registry.MentionTexts{Mention: &text},
			},
		},
	}
	engine := setupMentionRouter(svc, "")

	w := doJSON(t, engine, http.MethodGet, "/api/v1/acts/"+actID.String()+"/mentions?status=DRAFT", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, svc.lastStatus)
	assert.Equal(t, registry.MentionStatusDraft, *svc.lastStatus)
	assert.Equal(t, actID, svc.lastActID)
}

func TestListMentionsRejectsUnknownStatus(t *testing.T) {
	engine := setupMentionRouter(&mockMentionService{}, "")

	w := doJSON(t, engine, http.MethodGet, "/api/v1/acts/"+uuid.NewString()+"/mentions?status=PENDING", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMentionsRejectsMalformedActID(t *testing.T) {
	engine := setupMentionRouter(&mockMentionService{}, "")

	w := doJSON(t, engine, http.MethodGet, "/api/v1/acts/not-a-uuid/mentions", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReconcileMentions(t *testing.T) {
	actID := uuid.New()
	svc := &mockMentionService{}
	engine := setupMentionRouter(svc, "mmartin@consulat")

	text := "Mention de mariage."
	body := dto.ReconcileMentionsRequest{
		Mentions: []dto.MentionRequest{{OrderNumber: 1, MentionText: &text}},
	}
	w := doJSON(t, engine, http.MethodPut, "/api/v1/acts/"+actID.String()+"/mentions", body)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "mmartin@consulat", svc.lastOfficerID)
	require.Len(t, svc.lastIncoming, 1)
	assert.Equal(t, actID, svc.lastIncoming[0].ActID)
	assert.Equal(t, &text, svc.lastIncoming[0].Texts.Mention)
}

func TestReconcileMentionsRequiresOfficer(t *testing.T) {
	engine := setupMentionRouter(&mockMentionService{}, "")

	w := doJSON(t, engine, http.MethodPut, "/api/v1/acts/"+uuid.NewString()+"/mentions",
		dto.ReconcileMentionsRequest{})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateDraftMentions(t *testing.T) {
	svc := &mockMentionService{}
	engine := setupMentionRouter(svc, "mmartin@consulat")

	text := "première mention"
	body := dto.CreateDraftMentionsRequest{
		Mentions: []dto.MentionRequest{{MentionText: &text}},
	}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/acts/"+uuid.NewString()+"/mentions", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.lastIncoming, 1)
}

func TestCreateDraftMentionsRejectsEmptyList(t *testing.T) {
	engine := setupMentionRouter(&mockMentionService{}, "mmartin@consulat")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/acts/"+uuid.NewString()+"/mentions",
		dto.CreateDraftMentionsRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAbandonDraftMentions(t *testing.T) {
	svc := &mockMentionService{}
	engine := setupMentionRouter(svc, "mmartin@consulat")

	w := doJSON(t, engine, http.MethodDelete, "/api/v1/acts/"+uuid.NewString()+"/mentions/drafts", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "mmartin@consulat", svc.lastOfficerID)
}

func TestPrepareDocument(t *testing.T) {
	svc := &mockMentionService{document: base64.StdEncoding.EncodeToString([]byte("%PDF-1.7"))}
	engine := setupMentionRouter(svc, "mmartin@consulat")

	body := dto.PrepareDocumentRequest{OfficerFirstName: "Marie", OfficerLastName: "Martin"}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/acts/"+uuid.NewString()+"/mentions/document", body)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, svc.document, data["document"])
	assert.Equal(t, "Martin", svc.lastSignature.OfficerLastName)
}

func TestPrepareDocumentMapsWindowConflict(t *testing.T) {
	svc := &mockMentionService{
		returnErr: shared.NewDomainError("SIGNING_WINDOW_CLOSED", "Signing is blocked during the closure window"),
	}
	engine := setupMentionRouter(svc, "mmartin@consulat")

	body := dto.PrepareDocumentRequest{OfficerFirstName: "Marie", OfficerLastName: "Martin"}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/acts/"+uuid.NewString()+"/mentions/document", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SIGNING_WINDOW_CLOSED", resp.Error.Code)
}

func TestIntegrateSignedDocument(t *testing.T) {
	svc := &mockMentionService{}
	engine := setupMentionRouter(svc, "mmartin@consulat")

	signed := []byte("%PDF-1.7 signed")
	body := dto.SignedDocumentRequest{Document: base64.StdEncoding.EncodeToString(signed)}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/acts/"+uuid.NewString()+"/mentions/signed-document", body)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, signed, svc.lastContent)
}

func TestIntegrateSignedDocumentRejectsBadBase64(t *testing.T) {
	engine := setupMentionRouter(&mockMentionService{}, "mmartin@consulat")

	w := doJSON(t, engine, http.MethodPost, "/api/v1/acts/"+uuid.NewString()+"/mentions/signed-document",
		dto.SignedDocumentRequest{Document: "not base64!!"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntegrateSignedDocumentMapsTechnicalFailure(t *testing.T) {
	svc := &mockMentionService{
		returnErr: shared.NewTechnicalError("TIMESTAMP_VALIDATION_FAILED", "Timestamp validation failed", assert.AnError),
	}
	engine := setupMentionRouter(svc, "mmartin@consulat")

	body := dto.SignedDocumentRequest{Document: base64.StdEncoding.EncodeToString([]byte("x"))}
	w := doJSON(t, engine, http.MethodPost, "/api/v1/acts/"+uuid.NewString()+"/mentions/signed-document", body)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TIMESTAMP_VALIDATION_FAILED", resp.Error.Code)
}
