package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"

	"photo-viewer/internal/files"
)

var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// maxRemoteBytes caps downloads of dropped http(s) images
const maxRemoteBytes = 256 << 20

// ExifSummary is the subset of EXIF metadata shown in the status bar
type ExifSummary struct {
	Make     string
	Model    string
	Taken    time.Time
	HasTaken bool
}

func (e ExifSummary) Camera() string {
	return strings.TrimSpace(strings.TrimSpace(e.Make) + " " + strings.TrimSpace(e.Model))
}

func (e ExifSummary) IsEmpty() bool {
	return e.Camera() == "" && !e.HasTaken
}

// DecodedImage is the result of a decode task
type DecodedImage struct {
	Image  image.Image
	Width  int
	Height int
	Format string
	Size   int64
	Exif   ExifSummary
}

// ImageService reads image sources into pixels and writes rendered pixels out
type ImageService struct {
	client *http.Client
}

func NewImageService(httpTimeout time.Duration) *ImageService {
	return &ImageService{
		client: &http.Client{Timeout: httpTimeout},
	}
}

// Decode loads the image behind a file or http(s) URL, applying EXIF orientation
func (is *ImageService) Decode(ctx context.Context, rawURL string) (*DecodedImage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := is.read(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", files.DisplayName(rawURL), err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", files.DisplayName(rawURL), err)
	}

	bounds := img.Bounds()
	return &DecodedImage{
		Image:  img,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
		Size:   int64(len(data)),
		Exif:   readExif(data),
	}, nil
}

func (is *ImageService) read(ctx context.Context, rawURL string) ([]byte, error) {
	switch {
	case files.IsRemote(rawURL):
		return is.fetch(ctx, rawURL)
	case files.IsLocal(rawURL):
		path, err := files.ToPath(rawURL)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, rawURL)
	}
}

func (is *ImageService) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := is.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

func readExif(data []byte) ExifSummary {
	var summary ExifSummary

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return summary
	}

	if tag, err := x.Get(exif.Make); err == nil {
		summary.Make, _ = tag.StringVal()
	}
	if tag, err := x.Get(exif.Model); err == nil {
		summary.Model, _ = tag.StringVal()
	}
	if taken, err := x.DateTime(); err == nil {
		summary.Taken = taken
		summary.HasTaken = true
	}
	return summary
}

// SavePNG encodes img as PNG at path regardless of the path's extension
func (is *ImageService) SavePNG(ctx context.Context, path string, img image.Image) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if img == nil {
		return fmt.Errorf("no image data to save")
	}

	return files.AtomicWrite(path, 0o644, func(w io.Writer) error {
		return imaging.Encode(w, img, imaging.PNG)
	})
}
