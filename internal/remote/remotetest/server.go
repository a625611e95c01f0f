// Package remotetest provides an in-process blog service for tests.
package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/inkwell/internal/models"
)

// Server is a fake blog service that keeps posts in memory and counts the
// requests it receives.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	blogs  []models.Blog
	nextID int64

	lists   atomic.Int64
	gets    atomic.Int64
	creates atomic.Int64

	// FailNext, when > 0, makes that many upcoming requests fail with FailStatus.
	failNext   atomic.Int64
	failStatus atomic.Int64

	// createGate, when set, blocks POST /blogs until it is closed.
	createGate chan struct{}

	lastRequestID string
}

// NewServer starts a fake service seeded with blogs and registers its
// shutdown with t.Cleanup.
func NewServer(t testing.TB, seed ...models.Blog) *Server {
	t.Helper()

	s := &Server{
		blogs:  append([]models.Blog(nil), seed...),
		nextID: int64(len(seed)) + 100,
	}
	s.failStatus.Store(http.StatusInternalServerError)

	r := chi.NewRouter()
	r.Use(s.failures)
	r.Get("/blogs", s.handleList)
	r.Get("/blogs/{id}", s.handleGet)
	r.Post("/blogs", s.handleCreate)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// FailNext makes the next n requests answer with status.
func (s *Server) FailNext(n int, status int) {
	s.failStatus.Store(int64(status))
	s.failNext.Store(int64(n))
}

// HoldCreates blocks create requests until the returned func is called.
func (s *Server) HoldCreates() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.createGate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// Lists returns how many GET /blogs requests were served.
func (s *Server) Lists() int { return int(s.lists.Load()) }

// Gets returns how many GET /blogs/{id} requests were served.
func (s *Server) Gets() int { return int(s.gets.Load()) }

// Creates returns how many POST /blogs requests were served.
func (s *Server) Creates() int { return int(s.creates.Load()) }

// LastRequestID returns the X-Request-ID of the most recent request.
func (s *Server) LastRequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequestID
}

// Blogs returns a copy of the stored posts.
func (s *Server) Blogs() []models.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Blog(nil), s.blogs...)
}

func (s *Server) failures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.lastRequestID = r.Header.Get("X-Request-ID")
		s.mu.Unlock()

		for {
			n := s.failNext.Load()
			if n <= 0 {
				break
			}
			if s.failNext.CompareAndSwap(n, n-1) {
				writeJSON(w, int(s.failStatus.Load()), map[string]string{"error": "injected failure"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.lists.Add(1)
	writeJSON(w, http.StatusOK, s.Blogs())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.gets.Add(1)
	id := models.ID(chi.URLParam(r, "id"))
	for _, b := range s.Blogs() {
		if b.ID == id {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	s.creates.Add(1)

	var payload models.NewBlog
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	s.mu.Lock()
	gate := s.createGate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	s.nextID++
	created := payload.WithID(models.ID(strconv.FormatInt(s.nextID, 10)))
	s.blogs = append(s.blogs, created)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
