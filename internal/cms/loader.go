package cms

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fourcetech/site/internal/platform/errs"
	"github.com/fourcetech/site/internal/platform/requestid"
)

// Known content sections.
const (
	SectionHome     = "home"
	SectionAbout    = "about"
	SectionServices = "services"
	SectionInfo     = "info"
	SectionGlobal   = "global"
)

// Sections lists every section the site renders.
var Sections = []string{SectionHome, SectionAbout, SectionServices, SectionInfo, SectionGlobal}

// State is the lifecycle of one content request.
type State int

const (
	// Pending means the request has not settled yet.
	Pending State = iota
	// Ready means a document is available.
	Ready
	// Failed means the request settled with an error.
	Failed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Loader issues one best-effort read per requested section. It holds no
// cache: every call to Load performs exactly one fetch.
type Loader struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger
}

// NewLoader returns a Loader using fetcher. timeout bounds each fetch
// independently of the requester's lifetime.
func NewLoader(fetcher Fetcher, timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{fetcher: fetcher, timeout: timeout, logger: logger}
}

// Request is one in-flight or settled load. It is owned by the view that
// created it.
type Request struct {
	section string
	view    context.Context

	mu    sync.Mutex
	state State
	doc   Document
	err   error
	done  chan struct{}
}

// Load starts fetching section and returns immediately with a Pending
// request. view is the requester's lifetime: once it is done, a late result
// is discarded and the request never leaves Pending. Ending view does not
// abort the fetch itself.
func (l *Loader) Load(view context.Context, section string) *Request {
	r := &Request{
		section: section,
		view:    view,
		done:    make(chan struct{}),
	}
	go l.run(r)
	return r
}

func (l *Loader) run(r *Request) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.view), l.timeout)
	defer cancel()

	logger := l.logger.With("section", r.section, "request_id", requestid.FromContext(r.view))
	start := time.Now()

	doc, err := l.Retrieve(ctx, r.section)

	if !r.settle(doc, err) {
		logger.Debug("discarding late content result", "duration", time.Since(start).String())
		return
	}

	if err != nil {
		attrs := []any{"error", err, "kind", errs.KindOf(err).String(), "duration", time.Since(start).String()}
		var appErr *errs.AppError
		if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
			attrs = append(attrs, "cms_status", appErr.UpstreamStatus)
		}
		logger.Error("content load failed", attrs...)
		return
	}
	logger.Info("content loaded", "duration", time.Since(start).String())
}

// Retrieve performs one synchronous fetch of section and classifies every
// failure as an *errs.AppError.
func (l *Loader) Retrieve(ctx context.Context, section string) (Document, error) {
	body, status, err := l.fetcher.Fetch(ctx, section)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Document{}, &errs.AppError{
				Kind:    errs.Timeout,
				Message: "The content service took too long to respond.",
				Cause:   err,
			}
		}
		return Document{}, &errs.AppError{
			Kind:    errs.Unreachable,
			Message: "The content service could not be reached.",
			Cause:   err,
		}
	}

	if status == http.StatusNotFound {
		return Document{}, &errs.AppError{
			Kind:           errs.NotFound,
			UpstreamStatus: status,
			Message:        "The content service has no such section.",
		}
	}
	if !statusOK(status) {
		return Document{}, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: status,
			Message:        "The content service returned an error status.",
		}
	}

	doc, err := ParseDocument(body)
	if err != nil {
		if errors.Is(err, errNoData) {
			return Document{}, &errs.AppError{
				Kind:           errs.NotFound,
				UpstreamStatus: status,
				Message:        "The content service has no data for this section.",
				Cause:          err,
			}
		}
		return Document{}, &errs.AppError{
			Kind:           errs.ParsingFailed,
			UpstreamStatus: status,
			Message:        "The content service returned an unreadable document.",
			Cause:          err,
		}
	}

	return doc, nil
}

// settle applies the fetch outcome exactly once, unless the requester is
// already gone. It reports whether the outcome was applied.
func (r *Request) settle(doc Document, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Pending || r.view.Err() != nil {
		return false
	}

	if err != nil {
		r.state, r.err = Failed, err
	} else {
		r.state, r.doc = Ready, doc
	}
	close(r.done)
	return true
}

// Section returns the requested section name.
func (r *Request) Section() string {
	return r.section
}

// Done is closed when the request settles. It is never closed for a
// discarded result.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Snapshot returns the current state with its document or error.
func (r *Request) Snapshot() (State, Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.doc, r.err
}

// Await blocks until the request settles, wait elapses, or ctx is done, and
// then returns the current snapshot.
func (r *Request) Await(ctx context.Context, wait time.Duration) (State, Document, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-r.done:
	case <-timer.C:
	case <-ctx.Done():
	}
	return r.Snapshot()
}
