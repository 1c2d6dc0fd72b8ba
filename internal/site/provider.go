package site

import (
	"context"

	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/content"
)

// ContentLoader starts one content request per call. The request belongs to
// view and is discarded once view is done.
type ContentLoader interface {
	Load(view context.Context, section string) *cms.Request
}

// DefaultsProvider supplies the fallback document in effect.
type DefaultsProvider interface {
	Current() *content.Defaults
}

// SectionProber checks that content sections can be loaded.
type SectionProber interface {
	Probe(ctx context.Context, sections []string) []cms.ProbeResult
}
