package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/stagewatch-io/stagewatch/internal/models"
)

// ImagePayload is one image staged for upload, base64-encoded client-side.
type ImagePayload struct {
	Name string `json:"name"`
	Data string `json:"data"` // base64
}

// EncodeImageFile reads an image from disk and base64-encodes it for upload.
func EncodeImageFile(path string) (ImagePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImagePayload{}, fmt.Errorf("read image %s: %w", path, err)
	}
	return ImagePayload{
		Name: filepath.Base(path),
		Data: base64.StdEncoding.EncodeToString(data),
	}, nil
}

// UploadImages posts staged images and returns their server-side URLs. The
// returned URL count matches the payload count on success.
func (c *Client) UploadImages(ctx context.Context, images []ImagePayload) ([]string, error) {
	if len(images) == 0 {
		return nil, nil
	}
	body := struct {
		Images []ImagePayload `json:"images"`
	}{Images: images}

	var resp models.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/files/upload-images", nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.URLs) != len(images) {
		return nil, fmt.Errorf("upload returned %d urls for %d images", len(resp.URLs), len(images))
	}
	return resp.URLs, nil
}
