package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SdReum/classmood-cli/internal/platform/api"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

func TestLoginSendsFormCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/token" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "dana" || r.PostForm.Get("password") != "s3cret" {
			t.Errorf("unexpected form values %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	token, err := client.Login(context.Background(), "dana", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token = %q, want tok-123", token)
	}
}

func TestLoginSurfacesServerDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Invalid credentials"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	if _, err := client.Login(context.Background(), "dana", "wrong"); err == nil {
		t.Fatal("expected error for rejected credentials")
	} else if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Fatalf("error %q does not carry the server detail", err)
	}
}

func TestMeMapsUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	_, err := client.Me(context.Background(), "stale-token")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestListFilesParsesOffsetlessTimestamps(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":"dana","files":[
			{"id":7,"filename":"lecture-03.pdf","uploaded_at":"2026-08-26T10:15:00.123456"},
			{"id":9,"filename":"poll.csv","uploaded_at":"2026-08-26T11:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	files, err := client.ListFiles(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].ID != 7 || files[0].Filename != "lecture-03.pdf" {
		t.Fatalf("unexpected first record %+v", files[0])
	}
	for i, f := range files {
		if f.UploadedAt.IsZero() {
			t.Fatalf("files[%d].UploadedAt not parsed", i)
		}
	}
}

func TestAnalyzeRejectsMissingSeries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	_, err := client.Analyze(context.Background(), "tok-123", 7)
	if !errors.Is(err, apperrors.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAnalyzeAcceptsEmptySeries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"series":[]}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	points, err := client.Analyze(context.Background(), "tok-123", 7)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("len(points) = %d, want 0", len(points))
	}
}

func TestUploadSendsMultipartParts(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		parts := r.MultipartForm.File["files"]
		if len(parts) != 2 {
			t.Errorf("got %d parts in field files, want 2", len(parts))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":"dana","results":[
			{"filename":"a.txt","path":"uploads/dana/a.txt"},
			{"filename":"b.txt","path":"uploads/dana/b.txt"}
		]}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	results, err := client.Upload(context.Background(), "tok-123", []api.UploadFile{
		{Name: "a.txt", Reader: strings.NewReader("alpha")},
		{Name: "b.txt", Reader: strings.NewReader("beta")},
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(results) != 2 || results[1].StoredPath != "uploads/dana/b.txt" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestUploadRejectsEmptySelection(t *testing.T) {
	t.Parallel()

	client := api.NewClient("http://unused.invalid", time.Second)
	if _, err := client.Upload(context.Background(), "tok-123", nil); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDeleteFileReportsNotFoundDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/media/files/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"File not found"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	err := client.DeleteFile(context.Background(), "tok-123", 42)
	if err == nil || !strings.Contains(err.Error(), "File not found") {
		t.Fatalf("err = %v, want the server detail", err)
	}
}

func TestBootIDRequiresValue(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, time.Second)
	if _, err := client.BootID(context.Background()); !errors.Is(err, apperrors.ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}
