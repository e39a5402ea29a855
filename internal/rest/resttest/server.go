// Package resttest provides a fake upstream API for tests of code built on
// the rest client.
package resttest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/georgemunganga/printa-dashboard/internal/rest"
)

// Prefix is the path prefix of the fake API.
const Prefix = "/api/v1"

// Call is a request received by the Server.
type Call struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON request body into v.
func (c Call) Decode(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(c.Body, v); err != nil {
		t.Fatalf("decoding %s %s body %q: %v", c.Method, c.Path, c.Body, err)
	}
}

// Server is an httptest.Server answering canned responses per route and
// recording every request.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []Call
}

// NewServer starts a Server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	s := &Server{routes: make(map[string]http.HandlerFunc)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func routeKey(method, path string) string { return method + " " + path }

// Reply answers method on path with status and a raw body.
func (s *Server) Reply(method, path string, status int, body string) {
	s.HandleFunc(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// ReplyData answers method on path with 200 and data wrapped in the
// {success, message, data} envelope.
func (s *Server) ReplyData(method, path string, data any) {
	raw, err := json.Marshal(map[string]any{"success": true, "message": "ok", "data": data})
	if err != nil {
		panic(err)
	}
	s.Reply(method, path, http.StatusOK, string(raw))
}

// HandleFunc installs fn for method on path, replacing any earlier handler.
func (s *Server) HandleFunc(method, path string, fn http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[routeKey(method, path)] = fn
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, Prefix)

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	fn, ok := s.routes[routeKey(r.Method, path)]
	s.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"message":"route not found"}`)
		return
	}
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	fn(w, r)
}

// Calls returns the requests received for method on path.
func (s *Server) Calls(method, path string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many requests were received for method on path.
func (s *Server) Count(method, path string) int { return len(s.Calls(method, path)) }

// Total returns the number of requests received.
func (s *Server) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Client returns a rest.Client talking to the Server with the given bearer
// token source.
func (s *Server) Client(t testing.TB, creds rest.CredentialSource) *rest.Client {
	t.Helper()
	req, err := rest.NewRequester(s.URL+Prefix, s.Server.Client(), creds)
	if err != nil {
		t.Fatalf("creating requester: %v", err)
	}
	client, err := rest.NewClient(rest.Config{Fetcher: req})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	t.Cleanup(client.Wait)
	return client
}
