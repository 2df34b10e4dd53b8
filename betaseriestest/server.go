package betaseriestest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	gschema "github.com/gorilla/schema"
)

// Error codes returned by Server
const (
	CodeInvalidKey    = 1001
	CodeInvalidToken  = 2001
	CodeUnknownMember = 4002
	CodeWrongPassword = 4003
)

var formDecoder = gschema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

// Member is an account known to Server. Password is the MD5 hex digest.
type Member struct {
	ID       int64
	Login    string
	Password string
	Badges   []string
}

type authForm struct {
	Login    string `schema:"login"`
	Password string `schema:"password"`
}

type badgesQuery struct {
	Token string `schema:"token"`
	ID    int64  `schema:"id"`
}

// Server is an httptest server implementing members/auth, members/is_active,
// members/badges and members/destroy. Every other path answers 404 with an empty body.
type Server struct {
	*httptest.Server
	APIKey string

	mu      sync.Mutex
	members map[string]Member
	tokens  map[string]int64
	seq     int
	headers []http.Header
}

// NewServer starts a fake API accepting apiKey
func NewServer(apiKey string, members ...Member) *Server {
	s := &Server{
		APIKey:  apiKey,
		members: make(map[string]Member, len(members)),
		tokens:  make(map[string]int64),
	}
	for _, m := range members {
		s.members[m.Login] = m
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /members/auth", s.handleAuth)
	mux.HandleFunc("GET /members/is_active", s.handleIsActive)
	mux.HandleFunc("GET /members/badges", s.handleBadges)
	mux.HandleFunc("POST /members/destroy", s.handleDestroy)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	s.Server = httptest.NewServer(s.checkKey(mux))
	return s
}

// Headers returns the headers of every request received
func (s *Server) Headers() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]http.Header, len(s.headers))
	copy(out, s.headers)
	return out
}

// IssueToken creates a valid token for member id without going through members/auth
func (s *Server) IssueToken(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issue(id)
}

func (s *Server) issue(id int64) string {
	s.seq++
	token := fmt.Sprintf("token-%d-%d", id, s.seq)
	s.tokens[token] = id
	return token
}

func (s *Server) checkKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.headers = append(s.headers, r.Header.Clone())
		s.mu.Unlock()

		if r.Header.Get("X-BetaSeries-Key") != s.APIKey {
			writeError(w, http.StatusBadRequest, CodeInvalidKey, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var form authForm
	if err := formDecoder.Decode(&form, r.PostForm); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[form.Login]
	if !ok {
		writeError(w, http.StatusBadRequest, CodeUnknownMember, "Login doesn't exist")
		return
	}
	if m.Password != form.Password {
		writeError(w, http.StatusBadRequest, CodeWrongPassword, "Wrong password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":   map[string]any{"id": m.ID, "login": m.Login},
		"token":  s.issue(m.ID),
		"errors": []any{},
	})
}

func (s *Server) tokenOf(r *http.Request, query url.Values) string {
	if t := query.Get("token"); t != "" {
		return t
	}
	return r.Header.Get("X-BetaSeries-Token")
}

func (s *Server) handleIsActive(w http.ResponseWriter, r *http.Request) {
	token := s.tokenOf(r, r.URL.Query())

	s.mu.Lock()
	_, ok := s.tokens[token]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusBadRequest, CodeInvalidToken, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"errors": []any{}})
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	var q badgesQuery
	if err := formDecoder.Decode(&q, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[q.Token]; !ok {
		writeError(w, http.StatusBadRequest, CodeInvalidToken, "Invalid token")
		return
	}

	badges := []any{}
	for _, m := range s.members {
		if m.ID != q.ID {
			continue
		}
		for _, b := range m.Badges {
			badges = append(badges, map[string]any{"name": b})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"badges": badges, "errors": []any{}})
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	token := s.tokenOf(r, r.PostForm)

	s.mu.Lock()
	_, ok := s.tokens[token]
	delete(s.tokens, token)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusBadRequest, CodeInvalidToken, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"errors": []any{}})
}

func writeError(w http.ResponseWriter, status, code int, text string) {
	writeJSON(w, status, ErrorPayload(code, text))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
