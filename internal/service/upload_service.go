package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

// UploadService pushes a profile image to the external image host and
// returns its public URL.
type UploadService interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}

type uploadService struct {
	apiURL   string
	clientID string
	client   *http.Client
}

// NewUploadService creates an Imgur-backed upload service.
func NewUploadService(clientID string) UploadService {
	return &uploadService{
		apiURL:   "https://api.imgur.com/3/image",
		clientID: clientID,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type imgurResponse struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

func (s *uploadService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if s.clientID == "" {
		return "", fmt.Errorf("image host not configured")
	}
	if header.Size > maxUploadSize {
		return "", fmt.Errorf("file too large: %d bytes", header.Size)
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(raw) > maxUploadSize {
		return "", fmt.Errorf("file too large")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("image", base64.StdEncoding.EncodeToString(raw)); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}

	var parsed imgurResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse upload response: %w", err)
	}
	if !parsed.Success || parsed.Data.Link == "" {
		return "", fmt.Errorf("image host rejected upload: status %d", parsed.Status)
	}

	return parsed.Data.Link, nil
}
