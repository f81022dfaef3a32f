package slack

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/slack-go/slack"
)

// fakeSlack serves canned Web API responses keyed by method name and records
// the form values of every request.
type fakeSlack struct {
	mu        sync.Mutex
	responses map[string]http.HandlerFunc
	requests  map[string][]url.Values
}

func newFakeSlack(t *testing.T) (*fakeSlack, *slack.Client) {
	t.Helper()

	f := &fakeSlack{
		responses: make(map[string]http.HandlerFunc),
		requests:  make(map[string][]url.Values),
	}
	srv := httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(srv.Close)

	return f, slack.New("xoxb-test", slack.OptionAPIURL(srv.URL+"/"))
}

func (f *fakeSlack) serveHTTP(w http.ResponseWriter, r *http.Request) {
	method := strings.TrimPrefix(r.URL.Path, "/")
	_ = r.ParseForm()

	f.mu.Lock()
	f.requests[method] = append(f.requests[method], r.Form)
	handler, ok := f.responses[method]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, map[string]any{"ok": false, "error": "unknown_method"})
		return
	}
	handler(w, r)
}

func (f *fakeSlack) handle(method string, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method] = func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, body)
	}
}

func (f *fakeSlack) handleFunc(method string, fn http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method] = fn
}

func (f *fakeSlack) rateLimit(method string, retryAfter string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", retryAfter)
		w.WriteHeader(http.StatusTooManyRequests)
	}
}

func (f *fakeSlack) calls(method string) []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[method]
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
