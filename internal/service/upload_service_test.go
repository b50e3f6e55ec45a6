package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

func newFakeUpload(content []byte, name string) (multipart.File, *multipart.FileHeader) {
	return fakeFile{bytes.NewReader(content)}, &multipart.FileHeader{
		Filename: name,
		Size:     int64(len(content)),
	}
}

func newTestUploadService(apiURL string) *uploadService {
	return &uploadService{
		apiURL:   apiURL,
		clientID: "test-client-id",
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestUploadService_Upload(t *testing.T) {
	content := []byte("fake-image-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Client-ID test-client-id", r.Header.Get("Authorization"))

		assert.NoError(t, r.ParseMultipartForm(maxUploadSize))
		assert.Equal(t, base64.StdEncoding.EncodeToString(content), r.FormValue("image"))
		assert.Equal(t, "base64", r.FormValue("type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"link":"https://i.imgur.com/abc123.png"},"success":true,"status":200}`))
	}))
	defer server.Close()

	svc := newTestUploadService(server.URL)

	file, header := newFakeUpload(content, "avatar.png")
	url, err := svc.Upload(context.Background(), file, header)
	assert.NoError(t, err)
	assert.Equal(t, "https://i.imgur.com/abc123.png", url)
}

func TestUploadService_RejectsOversizedFile(t *testing.T) {
	svc := newTestUploadService("http://localhost:0")

	file, header := newFakeUpload([]byte("x"), "big.png")
	header.Size = maxUploadSize + 1

	url, err := svc.Upload(context.Background(), file, header)
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestUploadService_HostRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{},"success":false,"status":400}`))
	}))
	defer server.Close()

	svc := newTestUploadService(server.URL)

	file, header := newFakeUpload([]byte("fake-image-bytes"), "avatar.png")
	url, err := svc.Upload(context.Background(), file, header)
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestUploadService_MissingClientID(t *testing.T) {
	svc := NewUploadService("")

	file, header := newFakeUpload([]byte("fake-image-bytes"), "avatar.png")
	_, err := svc.Upload(context.Background(), file, header)
	assert.Error(t, err)
}
