package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SavePostMedia decodes a base64-encoded creative, stores it under
// uploads/posts and writes a 320px thumbnail next to it. Returns the
// relative media and thumbnail paths.
func SavePostMedia(mediaBase64 string) (string, string, error) {
	// Accept both raw base64 and data URIs
	if idx := strings.Index(mediaBase64, ","); idx >= 0 && strings.HasPrefix(mediaBase64, "data:") {
		mediaBase64 = mediaBase64[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(mediaBase64)
	if err != nil {
		return "", "", fmt.Errorf("invalid media encoding: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("invalid image data: %w", err)
	}

	uploadDir := filepath.Join("uploads", "posts")
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", "", err
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), uuid.NewString())
	mediaPath := filepath.Join(uploadDir, name+".png")
	thumbPath := filepath.Join(uploadDir, name+"_thumb.png")

	if err := imaging.Save(img, mediaPath); err != nil {
		return "", "", fmt.Errorf("failed to save media: %w", err)
	}

	thumb := imaging.Thumbnail(img, 320, 320, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return mediaPath, thumbPath, nil
}
