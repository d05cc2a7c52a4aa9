package composition

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/civilregistry/backend/internal/domain/registry"
	"go.uber.org/zap"
)

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// documentTemplate lays out the subsequent-mentions document: one line per
// mention, in apposition order, followed by the document sequence number.
const documentTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Mentions ultérieures n° {{.Sequence}}</title>
<style>
body { font-family: "Times New Roman", serif; font-size: 12pt; margin: 2cm; }
h1 { font-size: 13pt; text-align: center; text-transform: uppercase; }
p.mention { margin: 0 0 0.6em 0; text-align: justify; }
p.sequence { margin-top: 2em; text-align: right; }
</style>
</head>
<body>
<h1>Mentions ultérieures</h1>
{{range .Lines}}<p class="mention">{{.}}</p>
{{end}}<p class="sequence">Document n° {{.Sequence}}</p>
</body>
</html>
`

// Service composes the signable binary document for an act's draft mentions.
type Service struct {
	renderer Renderer
	tmpl     *template.Template
	logger   *zap.Logger
}

// NewService creates a composition Service
func NewService(renderer Renderer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		renderer: renderer,
		tmpl:     template.Must(template.New("mentions").Parse(documentTemplate)),
		logger:   logger,
	}
}

// MentionsBody renders the accumulated text of the signable mentions, sorted
// by order number: mention text, apposition text and authority text on one
// line per mention.
func MentionsBody(mentions []*registry.Mention) string {
	var b strings.Builder
	for _, m := range mentions {
		b.WriteString(deref(m.Texts.Mention))
		b.WriteString(" ")
		b.WriteString(deref(m.Texts.Apposition))
		b.WriteString(" ")
		b.WriteString(deref(m.Texts.Authority))
		b.WriteString("\n")
	}
	return b.String()
}

// ComposeMentionsDocument renders the act's signable mentions into the PDF
// handed to the signing step. The sequence number only drives the printed
// numbering; the composed document record is allocated by the caller.
func (s *Service) ComposeMentionsDocument(ctx context.Context, act *registry.Act, sequence int) ([]byte, error) {
	mentions := act.SignableMentions()
	lines := make([]string, len(mentions))
	for i, m := range mentions {
		line := fmt.Sprintf("%s %s %s",
			deref(m.Texts.Mention), deref(m.Texts.Apposition), deref(m.Texts.Authority))
		lines[i] = strings.TrimSpace(line)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, struct {
		Lines    []string
		Sequence int
	}{Lines: lines, Sequence: sequence}); err != nil {
		return nil, fmt.Errorf("failed to build mentions document: %w", err)
	}

	pdf, err := s.renderer.Render(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("mentions document rendered",
		zap.String("actId", act.ID.String()),
		zap.Int("mentionCount", len(mentions)),
		zap.Int("pdfBytes", len(pdf)))
	return pdf, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
