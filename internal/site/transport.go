package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fourcetech/site/internal/carousel"
	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/model"
	"github.com/fourcetech/site/internal/platform/errs"
)

const (
	checkTimeout = 30 * time.Second
	// pendingRefresh is how soon, in seconds, a loading page reloads itself.
	pendingRefresh = 2
)

// Transport serves the site's pages, the JSON view API and health probes.
type Transport struct {
	service   *Service
	pages     pageTemplates
	static    http.Handler
	assetsDir string
	logger    *slog.Logger
}

// NewTransport creates an HTTP transport backed by the given service.
// The built-in stylesheet is served at /static/. Static files under
// assetsDir are served at /assets/ when it is set.
func NewTransport(service *Service, assetsDir string, logger *slog.Logger) (*Transport, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	static, err := staticFiles()
	if err != nil {
		return nil, err
	}
	return &Transport{service: service, pages: pages, static: static, assetsDir: assetsDir, logger: logger}, nil
}

// RegisterRoutes attaches the transport's handlers to the given router.
func (t *Transport) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", t.handlePage(ViewHome)).Methods(http.MethodGet, http.MethodHead).Name(ViewHome)
	for _, view := range pageViews[1:] {
		r.HandleFunc("/"+view, t.handlePage(view)).Methods(http.MethodGet, http.MethodHead).Name(view)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/view/{view}", t.handleView).Methods(http.MethodGet).Name("view")

	r.HandleFunc("/healthz", t.handleHealth).Methods(http.MethodGet).Name("healthz")
	r.HandleFunc("/readyz", t.handleReady).Methods(http.MethodGet).Name("readyz")

	r.PathPrefix("/static/").
		Handler(http.StripPrefix("/static/", t.static)).
		Methods(http.MethodGet, http.MethodHead).
		Name("static")

	if t.assetsDir != "" {
		r.PathPrefix("/assets/").
			Handler(http.StripPrefix("/assets/", http.FileServer(http.Dir(t.assetsDir)))).
			Name("assets")
	}
}

// pageData is what the layout template renders.
type pageData struct {
	View        string
	Title       string
	Description string
	State       string
	Refresh     int
	Body        any
	Chrome      chromeData
	Carousel    *carouselData
}

type chromeData struct {
	State  string
	Header model.Header
	Footer model.Footer
}

type carouselDot struct {
	Index  int
	Number int
	Active bool
}

type carouselData struct {
	Index  int
	Active model.Slide
	Dots   []carouselDot
}

// newCarousel replays one carousel navigation. slide is the index the link
// was rendered at; step=next|prev moves from it and to=N jumps to slide N. A
// slide the current content no longer has resets to the first one.
func newCarousel(slides []model.Slide, q url.Values) *carouselData {
	n := len(slides)
	if n == 0 {
		return nil
	}

	from, err := strconv.Atoi(q.Get("slide"))
	if err != nil || from < 0 {
		from = 0
	}
	// The link may come from a longer sequence than the one loaded now.
	c := carousel.At(from, max(n, from+1))
	defer c.Close()
	c.SetCount(n)

	switch q.Get("step") {
	case "next":
		c.Next()
	case "prev":
		c.Previous()
	default:
		if to, err := strconv.Atoi(q.Get("to")); err == nil {
			c.GoTo(to)
		}
	}

	i := c.Index()
	dots := make([]carouselDot, n)
	for j := range dots {
		dots[j] = carouselDot{Index: j, Number: j + 1, Active: j == i}
	}
	return &carouselData{Index: i, Active: slides[i], Dots: dots}
}

func (t *Transport) handlePage(view string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := t.service.Page(r.Context(), view)
		if err != nil {
			t.handleServiceError(w, err)
			return
		}

		data := pageData{
			View:        view,
			Title:       page.Body.SEO.Title,
			Description: page.Body.SEO.Description,
			State:       page.Body.State.String(),
			Body:        page.Body.Model,
			Chrome:      chromeData{State: page.Chrome.State.String()},
		}
		if chrome, ok := page.Chrome.Model.(model.Chrome); ok {
			data.Chrome.Header = chrome.Header
			data.Chrome.Footer = chrome.Footer
		}
		if services, ok := page.Body.Model.(model.ServicesPage); ok {
			data.Carousel = newCarousel(services.Slides, r.URL.Query())
		}

		status := http.StatusOK
		switch {
		case page.Body.State == cms.Failed:
			status = http.StatusServiceUnavailable
		case page.Body.State == cms.Pending, page.Chrome.State == cms.Pending:
			data.Refresh = pendingRefresh
		}

		t.renderHTML(w, status, view, data)
	}
}

type viewResponse struct {
	View  string `json:"view"`
	State string `json:"state"`
	Data  any    `json:"data"`
}

func (t *Transport) handleView(w http.ResponseWriter, r *http.Request) {
	res, err := t.service.View(r.Context(), mux.Vars(r)["view"])
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	switch res.State {
	case cms.Ready:
		t.renderJSON(w, http.StatusOK, viewResponse{View: res.View, State: res.State.String(), Data: res.Model})
	case cms.Failed:
		msg := "Error loading content."
		var appErr *errs.AppError
		if errors.As(res.Err, &appErr) {
			msg = appErr.Message
		}
		t.renderError(w, http.StatusServiceUnavailable, msg)
	default:
		w.Header().Set("Retry-After", strconv.Itoa(pendingRefresh))
		t.renderError(w, http.StatusServiceUnavailable, "Content is still loading.")
	}
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type readiness struct {
	Ready    bool              `json:"ready"`
	Sections []cms.ProbeResult `json:"sections"`
}

func (t *Transport) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	results := t.service.Check(ctx)
	status := http.StatusOK
	ok := cms.AllOK(results)
	if !ok {
		status = http.StatusServiceUnavailable
	}
	t.renderJSON(w, status, readiness{Ready: ok, Sections: results})
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case errs.InvalidInput:
			status = http.StatusBadRequest
		case errs.NotFound:
			status = http.StatusNotFound
		case errs.Unreachable:
			status = http.StatusBadGateway
		case errs.Timeout:
			status = http.StatusGatewayTimeout
		case errs.ParsingFailed, errs.Unknown:
			// 500 Internal Server Error
		}
		t.renderError(w, status, appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func (t *Transport) renderHTML(w http.ResponseWriter, status int, view string, data pageData) {
	var buf bytes.Buffer
	if err := t.pages.execute(&buf, view, data); err != nil {
		t.logger.Error("failed to render page", "view", view, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
