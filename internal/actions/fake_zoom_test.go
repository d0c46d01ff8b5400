package actions

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/tailscale-portfolio/zoom-batch/internal/identity"
	"github.com/tailscale-portfolio/zoom-batch/internal/zoom"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type apiCall struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func (c apiCall) String() string {
	return c.Method + " " + c.Path
}

// fakeZoom is an in-memory stand-in for the parts of the Zoom API the
// handlers use. Statuses for specific "METHOD /path" keys can be forced,
// and failPage makes one page of the user list answer 500.
type fakeZoom struct {
	mu       sync.Mutex
	users    map[string]zoom.User
	pages    [][]zoom.User
	failPage int
	status   map[string]int
	calls    []apiCall
}

func newFakeZoom(users ...zoom.User) *fakeZoom {
	f := &fakeZoom{users: map[string]zoom.User{}, status: map[string]int{}}
	for _, u := range users {
		f.users[strings.ToLower(u.Email)] = u
	}
	return f
}

func (f *fakeZoom) force(method, path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[method+" "+path] = status
}

func (f *fakeZoom) recorded() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func (f *fakeZoom) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := apiCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if raw, _ := io.ReadAll(r.Body); len(bytes.TrimSpace(raw)) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}
	f.calls = append(f.calls, call)

	if status, ok := f.status[call.String()]; ok {
		w.WriteHeader(status)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/users":
		f.servePage(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/users/"):
		u, ok := f.users[strings.ToLower(strings.TrimPrefix(r.URL.Path, "/users/"))]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":1001,"message":"User does not exist"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(u)
	case r.Method == http.MethodPatch, r.Method == http.MethodPut, r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeZoom) servePage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("page_number"))
	if err != nil || n < 1 || (n > len(f.pages) && len(f.pages) > 0) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if n == f.failPage {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	page := zoom.UserPage{PageCount: len(f.pages), PageNumber: n}
	if len(f.pages) > 0 {
		page.Users = f.pages[n-1]
		page.PageSize = len(page.Users)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

type harness struct {
	zoom    *fakeZoom
	handler *Handler
	console *bytes.Buffer
	listing *bytes.Buffer
}

func newHarness(t *testing.T, fake *fakeZoom) *harness {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := zoom.NewClient(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}), zoom.WithBaseURL(srv.URL))
	resolver := identity.NewDirectoryResolver(client, "xyz.com", zap.NewNop())

	h := &harness{zoom: fake, console: &bytes.Buffer{}, listing: &bytes.Buffer{}}
	h.handler = NewHandler(client, resolver, NewReporter(h.console, zap.NewNop()), WithListingOutput(h.listing))
	return h
}

func callNames(calls []apiCall) []string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.String()
	}
	return names
}
