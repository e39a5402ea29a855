package session

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	cookiejar "github.com/juju/persistent-cookiejar"
)

// Cookie names and lifetime.
const (
	TokenCookie = "token"
	RoleCookie  = "role"
	CookieTTL   = 7 * 24 * time.Hour
)

// JarStore keeps the session in a persistent cookie jar scoped to the
// upstream API host.
type JarStore struct {
	mu    sync.Mutex
	jar   *cookiejar.Jar
	site  *url.URL
	clock clock.Clock
}

// NewJarStore opens the cookie jar at filename. An empty filename keeps the
// cookies in memory only.
func NewJarStore(filename, baseURL string, clk clock.Clock) (*JarStore, error) {
	site, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Annotatef(err, "parsing %q", baseURL)
	}
	if site.Host == "" {
		return nil, errors.NotValidf("cookie site %q", baseURL)
	}
	jar, err := cookiejar.New(&cookiejar.Options{
		Filename:  filename,
		NoPersist: filename == "",
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &JarStore{
		jar:   jar,
		site:  &url.URL{Scheme: site.Scheme, Host: site.Host, Path: "/"},
		clock: clk,
	}, nil
}

// Load returns the stored session. A missing or expired cookie yields an
// empty Context.
func (s *JarStore) Load() (Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c Context
	for _, cookie := range s.jar.Cookies(s.site) {
		switch cookie.Name {
		case TokenCookie:
			c.Token = cookie.Value
		case RoleCookie:
			c.Role = Role(cookie.Value)
		}
	}
	return c, nil
}

// Save stores the session with a fresh expiry and writes the jar to disk.
func (s *JarStore) Save(c Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires := s.clock.Now().Add(CookieTTL)
	s.jar.SetCookies(s.site, []*http.Cookie{
		{Name: TokenCookie, Value: c.Token, Path: "/", Expires: expires},
		{Name: RoleCookie, Value: string(c.Role), Path: "/", Expires: expires},
	})
	return errors.Annotate(s.jar.Save(), "saving cookies")
}

// Clear removes both cookies.
func (s *JarStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cookie := range s.jar.Cookies(s.site) {
		if cookie.Name == TokenCookie || cookie.Name == RoleCookie {
			s.jar.SetCookies(s.site, []*http.Cookie{{Name: cookie.Name, Path: "/", MaxAge: -1}})
		}
	}
	return errors.Annotate(s.jar.Save(), "saving cookies")
}

// MemoryStore keeps the session in memory.
type MemoryStore struct {
	mu  sync.Mutex
	ctx Context
}

// NewMemoryStore returns a store holding c.
func NewMemoryStore(c Context) *MemoryStore { return &MemoryStore{ctx: c} }

func (m *MemoryStore) Load() (Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx, nil
}

func (m *MemoryStore) Save(c Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = c
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = Context{}
	return nil
}
