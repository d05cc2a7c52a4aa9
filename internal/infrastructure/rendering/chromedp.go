// Package rendering turns composed HTML documents into the PDF bytes handed
// to the external signing step.
package rendering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/civilregistry/backend/internal/application/composition"
	infraconfig "github.com/civilregistry/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ChromedpRenderer renders HTML to PDF using Chrome DevTools Protocol
type ChromedpRenderer struct {
	cfg         infraconfig.RenderConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a new chromedp-based PDF renderer
func NewChromedpRenderer(cfg infraconfig.RenderConfig, logger *zap.Logger) *ChromedpRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpRenderer{
		cfg:         cfg,
		logger:      logger,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// Render converts HTML content to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errors.New("HTML content is empty")
	}

	start := time.Now()
	timeout := r.cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(r.cfg.PaperWidth).
				WithPaperHeight(r.cfg.PaperHeight).
				WithMarginTop(r.cfg.MarginInch).
				WithMarginRight(r.cfg.MarginInch).
				WithMarginBottom(r.cfg.MarginInch).
				WithMarginLeft(r.cfg.MarginInch).
				WithScale(1.0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("PDF rendering timed out after %v: %w", timeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, errors.New("generated PDF is empty")
	}

	r.logger.Info("PDF rendered successfully",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)))

	return pdfData, nil
}

// Close releases resources held by the renderer
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// Ensure ChromedpRenderer implements Renderer
var _ composition.Renderer = (*ChromedpRenderer)(nil)
