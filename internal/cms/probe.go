package cms

import (
	"context"
	"sync"

	"github.com/fourcetech/site/internal/platform/errs"
)

// retriever is what a Prober needs from a Loader.
type retriever interface {
	Retrieve(ctx context.Context, section string) (Document, error)
}

// ProbeResult is the outcome of checking one section.
type ProbeResult struct {
	Section string `json:"section"`
	OK      bool   `json:"ok"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Prober checks that sections can be loaded, using a bounded worker pool.
type Prober struct {
	loader      retriever
	concurrency int
}

// NewProber returns a Prober running at most concurrency fetches at once.
func NewProber(loader retriever, concurrency int) *Prober {
	return &Prober{loader: loader, concurrency: max(concurrency, 1)}
}

// Probe fetches every section once and returns one result per section, in
// the order given.
func (p *Prober) Probe(ctx context.Context, sections []string) []ProbeResult {
	if len(sections) == 0 {
		return nil
	}

	type job struct {
		idx     int
		section string
	}

	jobs := make(chan job, len(sections))
	results := make([]ProbeResult, len(sections))

	var wg sync.WaitGroup
	for range min(len(sections), p.concurrency) {
		wg.Go(func() {
			for j := range jobs {
				results[j.idx] = p.probeOne(ctx, j.section)
			}
		})
	}

	for i, s := range sections {
		jobs <- job{idx: i, section: s}
	}
	close(jobs)
	wg.Wait()

	return results
}

func (p *Prober) probeOne(ctx context.Context, section string) ProbeResult {
	_, err := p.loader.Retrieve(ctx, section)
	if err != nil {
		return ProbeResult{
			Section: section,
			Kind:    errs.KindOf(err).String(),
			Error:   err.Error(),
		}
	}
	return ProbeResult{Section: section, OK: true}
}

// AllOK reports whether every result succeeded.
func AllOK(results []ProbeResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}
