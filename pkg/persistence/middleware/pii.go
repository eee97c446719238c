package middleware

import (
	"context"
	"regexp"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
)

// Mask replaces every PII match.
const Mask = "***"

// DefaultPIIPatterns match Saudi national and iqama numbers (ten digits
// starting with 1 or 2) and Saudi mobile numbers, in Western or Arabic-Indic digits.
var DefaultPIIPatterns = []string{
	`(?:\+?966|0|٠)?[5٥][0-9٠-٩]{8}`,
	`[12١٢][0-9٠-٩]{9}`,
}

type piiMiddleware struct {
	next     ports.TranscriptStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks text matching the patterns
// before it is stored. It panics on an invalid pattern.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.TranscriptStore) ports.TranscriptStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Append(ctx context.Context, sessionID string, entry ports.TranscriptEntry) error {
	// entry is a copy; the caller's message is untouched.
	entry.Text = m.mask(entry.Text)
	return m.next.Append(ctx, sessionID, entry)
}

func (m *piiMiddleware) List(ctx context.Context, sessionID string) ([]ports.TranscriptEntry, error) {
	return m.next.List(ctx, sessionID)
}

func (m *piiMiddleware) mask(text string) string {
	for _, p := range m.patterns {
		text = p.ReplaceAllLiteralString(text, Mask)
	}
	return text
}
