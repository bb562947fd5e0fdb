package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeS3 records PUT and DELETE requests made against path-style URLs.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3(t *testing.T) (*fakeS3, *httptest.Server) {
	t.Helper()
	f := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			f.objects[r.URL.Path] = body
			f.types[r.URL.Path] = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			delete(f.objects, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func TestNew_DisabledWithoutCredentials(t *testing.T) {
	c, err := New(Options{Endpoint: "https://s3.example.com", Bucket: "b"})
	if c != nil || err != nil {
		t.Errorf("New() = %v, %v; want nil, nil", c, err)
	}
	if _, err := New(Options{Endpoint: "https://s3.example.com", AccessKey: "a", SecretKey: "s"}); err == nil {
		t.Error("missing bucket accepted")
	}
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	key := ObjectKey("../deck.zip", now)
	if !strings.HasPrefix(key, "exports/2026/03/14/") || !strings.HasSuffix(key, "/deck.zip") {
		t.Errorf("key = %q", key)
	}
	if strings.Contains(key, "..") {
		t.Errorf("key escapes prefix: %q", key)
	}
	if ObjectKey("a.pdf", now) == ObjectKey("a.pdf", now) {
		t.Error("keys are not unique")
	}
}

func TestPublish(t *testing.T) {
	t.Run("presigned link", func(t *testing.T) {
		f, srv := newFakeS3(t)
		c, err := New(Options{
			Endpoint: srv.URL, Region: "fsn1", AccessKey: "AKIA", SecretKey: "secret",
			Bucket: "exports", LinkTTL: time.Hour,
		})
		if err != nil {
			t.Fatal(err)
		}

		p, err := c.Publish(context.Background(), "deck.pdf", "application/pdf", []byte("%PDF-1.4"))
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		stored := f.objects["/exports/"+p.Key]
		if string(stored) != "%PDF-1.4" {
			t.Errorf("stored = %q", stored)
		}
		if f.types["/exports/"+p.Key] != "application/pdf" {
			t.Errorf("content type = %q", f.types["/exports/"+p.Key])
		}
		if !strings.Contains(p.URL, "X-Amz-Signature=") || !strings.Contains(p.URL, "X-Amz-Expires=3600") {
			t.Errorf("URL is not pre-signed: %s", p.URL)
		}
		if p.ExpiresAt.IsZero() {
			t.Error("ExpiresAt not set for pre-signed link")
		}

		if err := c.Delete(context.Background(), p.Key); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, ok := f.objects["/exports/"+p.Key]; ok {
			t.Error("object still present after Delete")
		}
	})

	t.Run("public url", func(t *testing.T) {
		_, srv := newFakeS3(t)
		c, err := New(Options{
			Endpoint: srv.URL, Region: "fsn1", AccessKey: "AKIA", SecretKey: "secret",
			Bucket: "exports", PublicURL: "https://cdn.example.com/",
		})
		if err != nil {
			t.Fatal(err)
		}
		p, err := c.Publish(context.Background(), "deck.zip", "application/zip", []byte("PK"))
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if p.URL != "https://cdn.example.com/"+p.Key || !p.ExpiresAt.IsZero() {
			t.Errorf("published = %+v", p)
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()
		c, _ := New(Options{Endpoint: srv.URL, Region: "fsn1", AccessKey: "a", SecretKey: "s", Bucket: "exports"})
		if _, err := c.Publish(context.Background(), "x.zip", "application/zip", []byte("PK")); err == nil {
			t.Error("Publish succeeded against a failing endpoint")
		}
	})
}
