package zoom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// countingSource hands out a new token on every call.
type countingSource struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return &oauth2.Token{AccessToken: fmt.Sprintf("token-%d", s.calls), TokenType: "Bearer"}, nil
}

type captured struct {
	method string
	path   string
	query  string
	auth   string
	ctype  string
	body   string
}

func newCaptureServer(t *testing.T, status int, reply string) (*httptest.Server, func() []captured) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []captured
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, captured{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			ctype:  r.Header.Get("Content-Type"),
			body:   string(body),
		})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, func() []captured {
		mu.Lock()
		defer mu.Unlock()
		return append([]captured(nil), reqs...)
	}
}

func TestClientAttachesFreshBearerPerRequest(t *testing.T) {
	srv, reqs := newCaptureServer(t, http.StatusOK, `{"id":"u1"}`)
	source := &countingSource{}
	client := NewClient(source, WithBaseURL(srv.URL))

	ctx := context.Background()
	_, err := client.GetUser(ctx, "jdoe@xyz.com")
	require.NoError(t, err)
	_, err = client.GetUser(ctx, "jdoe@xyz.com")
	require.NoError(t, err)

	require.Len(t, reqs(), 2)
	assert.Equal(t, "Bearer token-1", reqs()[0].auth)
	assert.Equal(t, "Bearer token-2", reqs()[1].auth)
	assert.Equal(t, "/users/jdoe@xyz.com", reqs()[0].path)
	assert.Equal(t, 2, source.calls)
}

func TestClientWriteCalls(t *testing.T) {
	srv, reqs := newCaptureServer(t, http.StatusNoContent, "")
	client := NewClient(&countingSource{}, WithBaseURL(srv.URL+"/"))
	ctx := context.Background()

	res, err := client.UpdateProfile(ctx, "u1", "John", "Testuser")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	_, err = client.UpdateEmail(ctx, "u1", "jtest@xyz.com")
	require.NoError(t, err)
	_, err = client.UpdateType(ctx, "u1", Basic)
	require.NoError(t, err)
	_, err = client.DeleteUser(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, reqs(), 4)
	got := reqs()

	assert.Equal(t, http.MethodPatch, got[0].method)
	assert.Equal(t, "/users/u1", got[0].path)
	assert.Equal(t, "application/json", got[0].ctype)
	assert.JSONEq(t, `{"first_name":"John","last_name":"Testuser"}`, got[0].body)

	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Equal(t, "/users/u1/email", got[1].path)
	assert.JSONEq(t, `{"email":"jtest@xyz.com"}`, got[1].body)

	assert.Equal(t, http.MethodPatch, got[2].method)
	assert.JSONEq(t, `{"type":"1"}`, got[2].body)

	assert.Equal(t, http.MethodDelete, got[3].method)
	assert.Equal(t, "/users/u1", got[3].path)
	assert.Empty(t, got[3].body)
}

func TestClientListUsers(t *testing.T) {
	srv, reqs := newCaptureServer(t, http.StatusOK,
		`{"page_count":2,"page_number":1,"page_size":300,"total_records":301,"users":[{"id":"a","email":"a@xyz.com","first_name":"A","last_name":"One","type":2,"status":"active"}]}`)
	client := NewClient(&countingSource{}, WithBaseURL(srv.URL))

	res, err := client.ListUsers(context.Background(), 1, 300)
	require.NoError(t, err)
	assert.Equal(t, "page_number=1&page_size=300", reqs()[0].query)

	page, err := DecodePage(res.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, page.PageCount)
	assert.False(t, page.Last())
	require.Len(t, page.Users, 1)
	assert.Equal(t, Licensed, page.Users[0].Type)
}

func TestClientTransportError(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, "")
	base := srv.URL
	srv.Close()

	client := NewClient(&countingSource{}, WithBaseURL(base))
	_, err := client.DeleteUser(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

type failingSource struct{ err error }

func (s failingSource) Token() (*oauth2.Token, error) { return nil, s.err }

func TestClientTokenErrorIsWrapped(t *testing.T) {
	srv, reqs := newCaptureServer(t, http.StatusOK, "")
	signErr := errors.New("cannot sign")
	client := NewClient(failingSource{err: signErr}, WithBaseURL(srv.URL))

	_, err := client.GetUser(context.Background(), "x@xyz.com")
	require.ErrorIs(t, err, signErr)
	assert.Empty(t, reqs())
}

func TestTypePatchEncoding(t *testing.T) {
	encoded, err := json.Marshal(typePatch{Type: Licensed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"2"}`, string(encoded))
}
