package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/content"
	"github.com/fourcetech/site/internal/model"
	"github.com/fourcetech/site/internal/platform/errs"
	"github.com/fourcetech/site/internal/platform/requestid"
)

// Views the site resolves. Every page is a view; global is the shared
// header and footer.
const (
	ViewHome     = "home"
	ViewAbout    = "about"
	ViewServices = "services"
	ViewInfo     = "info"
	ViewContact  = "contact"
	ViewGlobal   = "global"
)

// Views lists every view in navigation order.
var Views = []string{ViewHome, ViewAbout, ViewServices, ViewInfo, ViewContact, ViewGlobal}

var viewSections = map[string]string{
	ViewHome:     cms.SectionHome,
	ViewAbout:    cms.SectionAbout,
	ViewServices: cms.SectionServices,
	ViewInfo:     cms.SectionInfo,
	ViewContact:  cms.SectionGlobal,
	ViewGlobal:   cms.SectionGlobal,
}

var errUnknownView = errors.New("unknown view")

// settleMargin lets a load that ends at its fetch timeout settle before the
// render stops waiting for it.
const settleMargin = 250 * time.Millisecond

// SectionOf returns the content section a view is built from.
func SectionOf(view string) (string, bool) {
	s, ok := viewSections[view]
	return s, ok
}

// Result is one view after loading and, when ready, resolution.
type Result struct {
	View  string
	State cms.State
	// Model is the resolved view model; nil unless State is Ready.
	Model any
	// SEO is resolved from the document when ready and from the defaults
	// otherwise, so a page always has a title.
	SEO model.SEO
	Err error
}

// Page is a page body together with the shared chrome. Both settle
// independently.
type Page struct {
	Body   Result
	Chrome Result
}

// ServiceOptions wires a Service.
type ServiceOptions struct {
	Loader     ContentLoader
	Prober     SectionProber
	Defaults   DefaultsProvider
	Resolver   content.Resolver
	RenderWait time.Duration
	// FetchTimeout is the Loader's per-fetch timeout. When set, renders wait
	// past it so every load is ready or failed before the page is written.
	FetchTimeout time.Duration
	Logger       *slog.Logger
}

// Service loads content for views and resolves it against the fallback
// document.
type Service struct {
	loader   ContentLoader
	prober   SectionProber
	defaults DefaultsProvider
	resolver content.Resolver
	wait     time.Duration
	logger   *slog.Logger
}

// NewService creates a Service from opts.
func NewService(opts ServiceOptions) *Service {
	wait := opts.RenderWait
	if opts.FetchTimeout > 0 {
		wait = max(wait, opts.FetchTimeout+settleMargin)
	}
	return &Service{
		loader:   opts.Loader,
		prober:   opts.Prober,
		defaults: opts.Defaults,
		resolver: opts.Resolver,
		wait:     wait,
		logger:   opts.Logger,
	}
}

func unknownView(view string) error {
	return &errs.AppError{
		Kind:    errs.NotFound,
		Message: fmt.Sprintf("There is no view named %q.", view),
		Cause:   errUnknownView,
	}
}

// View loads and resolves one view. It waits for the load at most the
// render wait; a load still running after that is reported as Pending,
// which only happens when the fetch timeout is unknown.
func (s *Service) View(ctx context.Context, view string) (Result, error) {
	section, ok := SectionOf(view)
	if !ok {
		return Result{}, unknownView(view)
	}

	req := s.loader.Load(ctx, section)

	waitCtx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()
	return s.settle(waitCtx, view, req), nil
}

// Page loads a page body and the shared chrome concurrently. A page whose
// body comes from the global section shares one request with the chrome.
func (s *Service) Page(ctx context.Context, view string) (Page, error) {
	section, ok := SectionOf(view)
	if !ok || view == ViewGlobal {
		return Page{}, unknownView(view)
	}

	chromeReq := s.loader.Load(ctx, cms.SectionGlobal)
	bodyReq := chromeReq
	if section != cms.SectionGlobal {
		bodyReq = s.loader.Load(ctx, section)
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.wait)
	defer cancel()
	return Page{
		Body:   s.settle(waitCtx, view, bodyReq),
		Chrome: s.settle(waitCtx, ViewGlobal, chromeReq),
	}, nil
}

func (s *Service) settle(ctx context.Context, view string, req *cms.Request) Result {
	state, doc, err := req.Await(ctx, s.wait)
	res := Result{View: view, State: state, Err: err}

	if state == cms.Ready {
		res.Model, res.SEO = s.Resolve(view, doc)
		return res
	}
	_, res.SEO = s.Resolve(view, cms.Document{})

	if state == cms.Pending {
		s.logger.Warn("content still loading at render",
			"view", view,
			"section", req.Section(),
			"wait", s.wait.String(),
			"request_id", requestid.FromContext(ctx),
		)
	}
	return res
}

// Resolve builds the view model of view from doc and the current fallback
// document. An empty document yields the defaults.
func (s *Service) Resolve(view string, doc cms.Document) (any, model.SEO) {
	d := s.defaults.Current()
	rv := s.resolver

	switch view {
	case ViewHome:
		m := rv.Home(doc, d.Home)
		return m, m.SEO
	case ViewAbout:
		m := rv.About(doc, d.About)
		return m, m.SEO
	case ViewServices:
		m := rv.Services(doc, d.Services)
		return m, m.SEO
	case ViewInfo:
		m := rv.Info(doc, d.Info)
		return m, m.SEO
	case ViewContact:
		m := rv.Contact(doc, d.Contact, d.Footer.Contact)
		return m, m.SEO
	default:
		return model.Chrome{
			Header: rv.Header(doc, d.Header),
			Footer: rv.Footer(doc, d.Footer),
		}, model.SEO{}
	}
}

// Check probes every content section once.
func (s *Service) Check(ctx context.Context) []cms.ProbeResult {
	results := s.prober.Probe(ctx, cms.Sections)
	for _, r := range results {
		if !r.OK {
			s.logger.Warn("section check failed",
				"section", r.Section,
				"kind", r.Kind,
				"error", r.Error,
				"request_id", requestid.FromContext(ctx),
			)
		}
	}
	return results
}
