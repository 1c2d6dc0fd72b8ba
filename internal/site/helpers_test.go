package site

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/html"

	"github.com/fourcetech/site/internal/cms"
	"github.com/fourcetech/site/internal/content"
	"github.com/fourcetech/site/internal/platform/logger"
)

type cmsResponse struct {
	body   string
	status int
	err    error
}

// fakeCMS implements cms.Fetcher. Sections without a response have no data.
// When gate is non-nil, every fetch blocks until it is closed.
type fakeCMS struct {
	responses map[string]cmsResponse
	gate      chan struct{}
	delay     time.Duration

	mu    sync.Mutex
	calls map[string]int
}

func newFakeCMS(docs map[string]string) *fakeCMS {
	f := &fakeCMS{responses: make(map[string]cmsResponse), calls: make(map[string]int)}
	for section, body := range docs {
		f.responses[section] = cmsResponse{body: body, status: http.StatusOK}
	}
	return f
}

func (f *fakeCMS) Fetch(ctx context.Context, section string) ([]byte, int, error) {
	f.mu.Lock()
	f.calls[section]++
	f.mu.Unlock()

	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}

	resp, ok := f.responses[section]
	if !ok {
		return []byte(`{"data":null}`), http.StatusOK, nil
	}
	if resp.err != nil {
		return nil, 0, resp.err
	}
	return []byte(resp.body), resp.status, nil
}

func (f *fakeCMS) callCount(section string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[section]
}

func (f *fakeCMS) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

const testFetchTimeout = time.Second

func newTestService(t *testing.T, f cms.Fetcher, wait time.Duration) *Service {
	t.Helper()
	return newTestServiceTimeout(t, f, wait, testFetchTimeout)
}

// newTestServiceTimeout builds a Service told fetchTimeout. Zero leaves it
// unaware of the Loader's timeout, so wait alone bounds a render.
func newTestServiceTimeout(t *testing.T, f cms.Fetcher, wait, fetchTimeout time.Duration) *Service {
	t.Helper()
	log := logger.Discard()
	store, err := content.NewStore("", log)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	loader := cms.NewLoader(f, testFetchTimeout, log)
	return NewService(ServiceOptions{
		Loader:       loader,
		Prober:       cms.NewProber(loader, 2),
		Defaults:     store,
		Resolver:     content.Resolver{Images: cms.ImageResolver{MediaURL: "https://cms.test"}},
		RenderWait:   wait,
		FetchTimeout: fetchTimeout,
		Logger:       log,
	})
}

func newTestRouter(t *testing.T, f cms.Fetcher, wait time.Duration) *mux.Router {
	t.Helper()
	return routerFor(t, newTestService(t, f, wait))
}

func routerFor(t *testing.T, svc *Service) *mux.Router {
	t.Helper()
	transport, err := NewTransport(svc, "", logger.Discard())
	if err != nil {
		t.Fatalf("NewTransport() error = %v", err)
	}
	r := mux.NewRouter()
	transport.RegisterRoutes(r)
	return r
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	if match(n) {
		out = append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, match)...)
	}
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
