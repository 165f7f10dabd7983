package transcripts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Bridgette013/Truthseeker/internal/extract"
)

// memStore is an in-memory object store for tests.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (s *memStore) Save(ctx context.Context, clientID string, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := clientID + "/" + fileName
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	mimeType := "application/octet-stream"
	switch filepath.Ext(fileName) {
	case ".txt":
		mimeType = "text/plain"
	case ".gif":
		mimeType = "image/gif"
	}
	return key, int64(len(data)), mimeType, nil
}

func (s *memStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	s.mu.Lock()
	data, ok := s.objects[storageKey]
	s.mu.Unlock()
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.objects[storageKey] = data
	s.mu.Unlock()
	return int64(len(data)), nil
}

func TestUploadExtractsText(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	tr, err := svc.Upload(context.Background(), "client-a", "chat.txt", strings.NewReader("him: send gift cards\nme: no"))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Text != "him: send gift cards\nme: no" {
		t.Errorf("text = %q", tr.Text)
	}
	if tr.StorageKey == "" || tr.ID == "" {
		t.Errorf("transcript = %+v", tr)
	}
	if _, ok := store.objects[tr.StorageKey+".extracted.txt"]; !ok {
		t.Error("derived extracted copy must be stored")
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Upload(context.Background(), "client-a", "cat.gif", strings.NewReader("GIF89a"))
	if !errors.Is(err, extract.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestUploadHandlerRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(newMemStore())
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "chat.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("him: wire me money")); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Client-Id", "client-a")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "wire me money") {
		t.Errorf("body = %s", resp.Body.String())
	}
}

func TestUploadHandlerMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(newMemStore())
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.Code)
	}
}
