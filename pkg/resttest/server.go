package resttest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/restdata/restdata/pkg/httputil"
)

// LoginPath is the endpoint that exchanges credentials for a session key.
const LoginPath = "/services/auth/login"

// Server is a fake management server backed by httptest.
type Server struct {
	srv *httptest.Server

	mu        sync.RWMutex
	endpoints map[string]*endpoint // "METHOD path"
	requests  []RequestLog

	auth *credentials
}

type credentials struct {
	username, password, sessionKey string
}

// New starts a server that is closed when the test completes.
func New(t testing.TB) *Server {
	t.Helper()
	s := NewServer()
	t.Cleanup(s.Close)
	return s
}

// NewServer starts a server. The caller must Close it.
func NewServer() *Server {
	s := &Server{endpoints: make(map[string]*endpoint)}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	return s.srv.URL
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return s.srv.Listener.Addr().String()
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// RequireAuth enables the login endpoint and rejects requests that carry
// neither "Authorization: Splunk <sessionKey>" nor the basic credentials.
func (s *Server) RequireAuth(username, password, sessionKey string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = &credentials{username: username, password: password, sessionKey: sessionKey}
	return s
}

// Mock adds an endpoint and returns a builder for its response.
//
// Example:
//
//	srv.Mock("GET", "/services/server/info").
//	    WithFeed(resttest.Entry("server-info", resttest.Field("version", "9.1.2"))).
//	    Reply()
func (s *Server) Mock(method, path string) *EndpointBuilder {
	return &EndpointBuilder{
		server:   s,
		key:      method + " " + path,
		endpoint: &endpoint{status: http.StatusOK, header: make(http.Header)},
	}
}

// Reset clears all endpoints and request logs.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints = make(map[string]*endpoint)
	s.requests = nil
}

func (s *Server) add(key string, e *endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints[key] = e
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	s.log(r)

	s.mu.RLock()
	auth := s.auth
	e, ok := s.endpoints[r.Method+" "+r.URL.Path]
	s.mu.RUnlock()

	if auth != nil {
		if r.URL.Path == LoginPath {
			auth.login(w, r)
			return
		}
		if !auth.allows(r) {
			httputil.WriteUnauthorized(w, "call not properly authenticated")
			return
		}
	}

	if !ok {
		httputil.WriteNotFound(w, "Not Found")
		return
	}
	e.write(w, r.URL.Query())
}

func (c *credentials) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.PostForm.Get("username") != c.username || r.PostForm.Get("password") != c.password {
		httputil.WriteUnauthorized(w, "Login failed")
		return
	}
	doc := httputil.NewDocument()
	doc.CreateElement("response").CreateElement("sessionKey").SetText(c.sessionKey)
	httputil.WriteXML(w, http.StatusOK, doc)
}

func (c *credentials) allows(r *http.Request) bool {
	if r.Header.Get("Authorization") == "Splunk "+c.sessionKey {
		return true
	}
	user, pass, ok := r.BasicAuth()
	return ok && user == c.username && pass == c.password
}

func (s *Server) log(r *http.Request) {
	entry := RequestLog{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Form:   url.Values{},
	}
	for k, v := range r.PostForm {
		entry.Form[k] = append([]string(nil), v...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, entry)
}

// Requests returns a copy of the logged requests in arrival order.
func (s *Server) Requests() []RequestLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]RequestLog(nil), s.requests...)
}

// LastRequest returns the most recent request to method and path, or nil.
func (s *Server) LastRequest(method, path string) *RequestLog {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return &reqs[i]
		}
	}
	return nil
}

// AssertCalled asserts that method and path were requested at least once.
func (s *Server) AssertCalled(t testing.TB, method, path string) {
	t.Helper()
	if s.countCalls(method, path) == 0 {
		t.Errorf("expected %s %s to be called, but it was not", method, path)
	}
}

// AssertCalledTimes asserts that method and path were requested exactly
// times times.
func (s *Server) AssertCalledTimes(t testing.TB, method, path string, times int) {
	t.Helper()
	if got := s.countCalls(method, path); got != times {
		t.Errorf("expected %s %s to be called %d times, got %d", method, path, times, got)
	}
}

// AssertNotCalled asserts that method and path were never requested.
func (s *Server) AssertNotCalled(t testing.TB, method, path string) {
	t.Helper()
	if got := s.countCalls(method, path); got > 0 {
		t.Errorf("expected %s %s not to be called, but it was called %d times", method, path, got)
	}
}

func (s *Server) countCalls(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}
