package middleware

import (
	"context"
	"regexp"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/ports"
)

type piiMiddleware struct {
	next     ports.ProcessStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks substrings matching the
// patterns in the user-supplied text fields of the process (the description
// and element names) before it reaches the backing store.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ProcessStore) ports.ProcessStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, process *domain.Process) error {
	// Clone first: the in-memory process held by the caller stays unmasked.
	cloned := process.Clone()

	cloned.Description = mask(cloned.Description, m.patterns)
	for i := range cloned.Elements {
		cloned.Elements[i].Name = mask(cloned.Elements[i].Name, m.patterns)
	}

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Process, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func mask(s string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, "***")
	}
	return s
}
