package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadBlog(t *testing.T) {
	svc, _ := newTestService(t)
	h := ReadBlog(svc, newTestViews(t))

	w := serve(t, "/blogs/{id}/read", http.MethodGet, h, httptest.NewRequest(http.MethodGet, "/blogs/1/read", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{"<h1>Budget 2024</h1>", "<p>Para one.</p>", "<p>Para two.</p>", "Thursday, February 1, 2024", "1 MIN READ"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestReadBlog_NotFound(t *testing.T) {
	svc, srv := newTestService(t)
	h := ReadBlog(svc, newTestViews(t))

	w := serve(t, "/blogs/{id}/read", http.MethodGet, h, httptest.NewRequest(http.MethodGet, "/blogs/999/read", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusNotFound)
	}
	if !strings.Contains(w.Body.String(), "Blog not found") {
		t.Error("missing not found message")
	}
	if srv.Gets() != 1 {
		t.Errorf("got %d detail requests, want 1 (not found is not retried)", srv.Gets())
	}
}

func TestReadBlog_RemoteFailure(t *testing.T) {
	svc, srv := newTestService(t)
	srv.FailNext(10, http.StatusServiceUnavailable)
	h := ReadBlog(svc, newTestViews(t))

	w := serve(t, "/blogs/{id}/read", http.MethodGet, h, httptest.NewRequest(http.MethodGet, "/blogs/1/read", nil))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusBadGateway)
	}
	if strings.Contains(w.Body.String(), "Blog not found") {
		t.Error("a service failure must not be reported as not found")
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("got status %q, want %q", got["status"], "ok")
	}
}
