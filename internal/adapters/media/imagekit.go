package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"devevent/internal/domain"
)

// DefaultUploadURL is the ImageKit upload API endpoint.
const DefaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

type imageKitUploader struct {
	client     *http.Client
	privateKey string
	uploadURL  string
	folder     string
}

// ImageKitConfig holds configuration for the ImageKit uploader.
type ImageKitConfig struct {
	PrivateKey string
	Folder     string
	UploadURL  string // defaults to DefaultUploadURL
}

// NewImageKitUploader returns a MediaUploader that uploads files to ImageKit
// and returns their public URL.
func NewImageKitUploader(client *http.Client, cfg ImageKitConfig) domain.MediaUploader {
	if client == nil {
		client = http.DefaultClient
	}
	uploadURL := cfg.UploadURL
	if uploadURL == "" {
		uploadURL = DefaultUploadURL
	}
	return &imageKitUploader{
		client:     client,
		privateKey: cfg.PrivateKey,
		uploadURL:  uploadURL,
		folder:     cfg.Folder,
	}
}

type uploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

func (u *imageKitUploader) Upload(ctx context.Context, data []byte, fileName string) (string, error) {
	if fileName == "" {
		fileName = "event-photo.jpg"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("fileName", fileName); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if u.folder != "" {
		if err := writer.WriteField("folder", u.folder); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	// ImageKit authenticates with the private key as basic auth user and an
	// empty password.
	req.SetBasicAuth(u.privateKey, "")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload to imagekit: %w", err)
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode imagekit response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imagekit returned status %d: %s", resp.StatusCode, result.Message)
	}
	if result.URL == "" {
		return "", fmt.Errorf("imagekit response missing url")
	}
	return result.URL, nil
}
