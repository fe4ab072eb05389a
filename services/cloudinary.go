package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// CloudinaryClient uploads prepared photos with Cloudinary's unsigned
// upload flow: no credentials, scoped by an upload preset created in the
// dashboard. A failed upload is not retried.
type CloudinaryClient struct {
	HTTP         *http.Client
	BaseURL      string
	UploadPreset string
}

func NewCloudinaryClient() *CloudinaryClient {
	return &CloudinaryClient{
		HTTP:         &http.Client{Timeout: 30 * time.Second},
		BaseURL:      "https://api.cloudinary.com/v1_1/" + os.Getenv("CLOUDINARY_CLOUD_NAME"),
		UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
	}
}

// Upload sends the prepared photo into the given logical folder (for
// example "incidencias" or "soluciones") and returns its https delivery
// URL.
func (c *CloudinaryClient) Upload(ctx context.Context, img *PreparedImage, filename, folder string) (string, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", err
	}
	if err := form.WriteField("upload_preset", c.UploadPreset); err != nil {
		return "", err
	}
	if err := form.WriteField("folder", "sigim/"+folder); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/image/upload", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("error al subir imagen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Error.Message != "" {
			msg = payload.Error.Message
		}
		return "", fmt.Errorf("error al subir imagen: %s", msg)
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("error al subir imagen: %w", err)
	}
	if payload.SecureURL == "" {
		return "", errors.New("error al subir imagen: respuesta sin secure_url")
	}

	return payload.SecureURL, nil
}
