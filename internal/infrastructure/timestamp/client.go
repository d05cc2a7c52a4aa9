// Package timestamp adapts the external timestamping authority: augmentation
// of signed documents to long-term validation, signature verification, and
// the review blocks raised when a post-signature commit fails.
package timestamp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appmention "github.com/civilregistry/backend/internal/application/mention"
	infraconfig "github.com/civilregistry/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client talks to the timestamping authority over HTTP and records review
// blocks in Redis for the manual-analysis workflow.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	redis          *redis.Client
	reviewBlockKey string
	reviewBlockTTL time.Duration
	logger         *zap.Logger
}

// NewClient creates a timestamping client from configuration
func NewClient(cfg *infraconfig.TimestampConfig, redisClient *redis.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		redis:          redisClient,
		reviewBlockKey: cfg.ReviewBlockKey,
		reviewBlockTTL: cfg.ReviewBlockTTL,
		logger:         logger,
	}
}

// AugmentToLongTermValidation upgrades a freshly signed document to the
// long-term validation profile
func (c *Client) AugmentToLongTermValidation(ctx context.Context, signed []byte) ([]byte, error) {
	return c.postBinary(ctx, "/signatures/augment", signed)
}

// validateResponse is the authority's verification payload
type validateResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Content   []byte    `json:"content"`
}

// ValidateAndExtract verifies the augmented signature and returns the
// authoritative timestamp together with the canonical signed content
func (c *Client) ValidateAndExtract(ctx context.Context, augmented []byte) (*appmention.TimestampResult, error) {
	body, err := c.postBinary(ctx, "/signatures/validate", augmented)
	if err != nil {
		return nil, err
	}

	var resp validateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed validation response: %w", err)
	}
	return &appmention.TimestampResult{
		Timestamp: resp.Timestamp,
		Content:   resp.Content,
	}, nil
}

// CreateReviewBlock marks the timestamping pipeline as requiring human
// analysis. The block is consulted by the operations dashboard; it is not a
// lock on further signing.
func (c *Client) CreateReviewBlock(ctx context.Context) error {
	err := c.redis.Set(ctx, c.reviewBlockKey, time.Now().UTC().Format(time.RFC3339), c.reviewBlockTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to create review block: %w", err)
	}
	c.logger.Warn("timestamp review block created", zap.String("key", c.reviewBlockKey))
	return nil
}

// HasReviewBlock reports whether a review block is currently raised
func (c *Client) HasReviewBlock(ctx context.Context) (bool, error) {
	exists, err := c.redis.Exists(ctx, c.reviewBlockKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read review block: %w", err)
	}
	return exists > 0, nil
}

// ClearReviewBlock lifts the review block after manual analysis
func (c *Client) ClearReviewBlock(ctx context.Context) error {
	return c.redis.Del(ctx, c.reviewBlockKey).Err()
}

func (c *Client) postBinary(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timestamping authority unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamping response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timestamping authority returned %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

// Ensure Client implements TimestampAuthority
var _ appmention.TimestampAuthority = (*Client)(nil)
