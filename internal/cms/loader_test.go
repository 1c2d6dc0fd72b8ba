package cms

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fourcetech/site/internal/platform/errs"
	"github.com/fourcetech/site/internal/platform/logger"
)

var errConnectionRefused = errors.New("connection refused")

// mockFetcher implements Fetcher for testing. When gate is non-nil, Fetch
// blocks until it is closed.
type mockFetcher struct {
	body       string
	statusCode int
	err        error
	gate       chan struct{}
	calls      atomic.Int32
	sections   chan string
}

func (m *mockFetcher) Fetch(ctx context.Context, section string) ([]byte, int, error) {
	m.calls.Add(1)
	if m.sections != nil {
		m.sections <- section
	}
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.statusCode, m.err
	}
	return []byte(m.body), m.statusCode, nil
}

func newTestLoader(f Fetcher) *Loader {
	return NewLoader(f, time.Second, logger.Discard())
}

func TestLoader_Load_Ready(t *testing.T) {
	f := &mockFetcher{body: `{"data":{"heading":"About us"}}`, statusCode: http.StatusOK}
	req := newTestLoader(f).Load(context.Background(), SectionAbout)

	state, doc, err := req.Await(context.Background(), time.Second)
	if state != Ready {
		t.Fatalf("state = %v, want ready (err %v)", state, err)
	}
	if got := doc.Get("heading").String(); got != "About us" {
		t.Errorf("heading = %q", got)
	}
	if n := f.calls.Load(); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
	if req.Section() != SectionAbout {
		t.Errorf("Section() = %q", req.Section())
	}
}

func TestLoader_Load_StartsPending(t *testing.T) {
	f := &mockFetcher{body: `{"data":{}}`, statusCode: http.StatusOK, gate: make(chan struct{})}
	req := newTestLoader(f).Load(context.Background(), SectionHome)

	if state, _, _ := req.Snapshot(); state != Pending {
		t.Fatalf("state = %v, want pending", state)
	}
	state, _, _ := req.Await(context.Background(), 10*time.Millisecond)
	if state != Pending {
		t.Errorf("state after short wait = %v, want pending", state)
	}

	close(f.gate)
	<-req.Done()
	if state, _, _ := req.Snapshot(); state != Ready {
		t.Errorf("state = %v, want ready", state)
	}
}

func TestLoader_Load_Failures(t *testing.T) {
	tests := []struct {
		name     string
		fetcher  *mockFetcher
		wantKind errs.Kind
	}{
		{
			name:     "transport error",
			fetcher:  &mockFetcher{err: errConnectionRefused},
			wantKind: errs.Unreachable,
		},
		{
			name:     "server error",
			fetcher:  &mockFetcher{body: `oops`, statusCode: http.StatusInternalServerError},
			wantKind: errs.Unreachable,
		},
		{
			name:     "unknown section",
			fetcher:  &mockFetcher{body: `{"data":null,"error":{"status":404}}`, statusCode: http.StatusNotFound},
			wantKind: errs.NotFound,
		},
		{
			name:     "no data for section",
			fetcher:  &mockFetcher{body: `{"data":null}`, statusCode: http.StatusOK},
			wantKind: errs.NotFound,
		},
		{
			name:     "malformed payload",
			fetcher:  &mockFetcher{body: `<html>`, statusCode: http.StatusOK},
			wantKind: errs.ParsingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestLoader(tt.fetcher).Load(context.Background(), "home")

			state, doc, err := req.Await(context.Background(), time.Second)
			if state != Failed {
				t.Fatalf("state = %v, want failed", state)
			}
			if !doc.Empty() {
				t.Error("failed request should carry no document")
			}
			if got := errs.KindOf(err); got != tt.wantKind {
				t.Errorf("kind = %v, want %v", got, tt.wantKind)
			}
		})
	}
}

func TestLoader_Retrieve_Timeout(t *testing.T) {
	f := &mockFetcher{gate: make(chan struct{})}
	l := NewLoader(f, time.Second, logger.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := l.Retrieve(ctx, SectionInfo)
	if got := errs.KindOf(err); got != errs.Timeout {
		t.Errorf("kind = %v, want timeout (err %v)", got, err)
	}
}

func TestLoader_Load_FetchTimeoutFails(t *testing.T) {
	f := &mockFetcher{gate: make(chan struct{})}
	l := NewLoader(f, 10*time.Millisecond, logger.Discard())

	req := l.Load(context.Background(), SectionInfo)
	select {
	case <-req.Done():
	case <-time.After(time.Second):
		t.Fatal("request never settled")
	}

	state, _, err := req.Snapshot()
	if state != Failed || errs.KindOf(err) != errs.Timeout {
		t.Errorf("state = %v kind = %v, want failed timeout", state, errs.KindOf(err))
	}
}

func TestLoader_Load_DiscardsLateResult(t *testing.T) {
	f := &mockFetcher{
		body:       `{"data":{"heading":"late"}}`,
		statusCode: http.StatusOK,
		gate:       make(chan struct{}),
		sections:   make(chan string, 1),
	}
	view, teardown := context.WithCancel(context.Background())
	req := newTestLoader(f).Load(view, SectionServices)

	<-f.sections
	teardown()
	close(f.gate)

	select {
	case <-req.Done():
		t.Fatal("late result must not be applied")
	case <-time.After(50 * time.Millisecond):
	}

	if state, _, _ := req.Snapshot(); state != Pending {
		t.Errorf("state = %v, want pending", state)
	}
	if n := f.calls.Load(); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
}

// ctxReportFetcher reports the fetch context's error once released.
type ctxReportFetcher struct {
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (p *ctxReportFetcher) Fetch(ctx context.Context, _ string) ([]byte, int, error) {
	close(p.started)
	<-p.release
	p.ctxErr <- ctx.Err()
	return []byte(`{"data":{}}`), http.StatusOK, nil
}

func TestLoader_Load_TeardownDoesNotAbortFetch(t *testing.T) {
	f := &ctxReportFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
		ctxErr:  make(chan error, 1),
	}
	view, teardown := context.WithCancel(context.Background())
	newTestLoader(f).Load(view, SectionHome)

	<-f.started
	teardown()
	close(f.release)

	if err := <-f.ctxErr; err != nil {
		t.Errorf("fetch context error = %v, want nil after view teardown", err)
	}
}

func TestRequest_SettleOnce(t *testing.T) {
	r := &Request{section: "home", view: context.Background(), done: make(chan struct{})}

	if !r.settle(NewDocument(`{"a":1}`), nil) {
		t.Fatal("first settle should apply")
	}
	if r.settle(Document{}, errConnectionRefused) {
		t.Fatal("second settle must not apply")
	}
	if state, _, err := r.Snapshot(); state != Ready || err != nil {
		t.Errorf("state = %v err = %v, want ready", state, err)
	}
}

func TestState_String(t *testing.T) {
	for state, want := range map[State]string{Pending: "pending", Ready: "ready", Failed: "failed"} {
		if got := state.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
