package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"photo-viewer/internal/models"
)

var ErrNoImage = errors.New("no image assigned to surface")

// Pivot is the rotation center in surface pixel coordinates
type Pivot struct {
	X, Y float64
}

// Surface holds the decoded pixels of the displayed image together with the
// live rotation and color-adjust state. It is not safe for concurrent use and
// is only touched from the UI thread.
type Surface struct {
	source  *image.NRGBA
	preview *image.NRGBA

	angle  float64
	pivot  Pivot
	adjust models.ColorAdjust

	engine         ColorEngine
	previewMaxEdge int
}

func NewSurface(engine ColorEngine, previewMaxEdge int) *Surface {
	if engine == nil {
		engine = ImagingEngine{}
	}
	return &Surface{
		engine:         engine,
		previewMaxEdge: previewMaxEdge,
	}
}

// SetPixels replaces the displayed pixels. Rotation and color state are left
// as they are; callers reapply them for the new image.
func (s *Surface) SetPixels(img image.Image) {
	if img == nil {
		s.source = nil
		s.preview = nil
		return
	}
	s.source = imaging.Clone(img)
	s.preview = s.source

	if s.previewMaxEdge > 0 {
		b := s.source.Bounds()
		if b.Dx() > s.previewMaxEdge || b.Dy() > s.previewMaxEdge {
			s.preview = imaging.Fit(s.source, s.previewMaxEdge, s.previewMaxEdge, imaging.Linear)
		}
	}
}

func (s *Surface) HasPixels() bool {
	return s.source != nil
}

// Size returns the unrotated pixel size of the current image
func (s *Surface) Size() (int, int) {
	if s.source == nil {
		return 0, 0
	}
	b := s.source.Bounds()
	return b.Dx(), b.Dy()
}

// Center is the pivot used for rotations of the current image
func (s *Surface) Center() Pivot {
	w, h := s.Size()
	return Pivot{X: float64(w) / 2, Y: float64(h) / 2}
}

// ApplyRotation sets the live rotation. Positive angles turn clockwise.
func (s *Surface) ApplyRotation(angle float64, pivot Pivot) {
	s.angle = angle
	s.pivot = pivot
}

func (s *Surface) Rotation() (float64, Pivot) {
	return s.angle, s.pivot
}

// ApplyColorAdjust replaces the live color-adjust bundle
func (s *Surface) ApplyColorAdjust(adjust models.ColorAdjust) {
	s.adjust = adjust.Clamp()
}

func (s *Surface) ColorAdjust() models.ColorAdjust {
	return s.adjust
}

func (s *Surface) EngineName() string {
	return s.engine.Name()
}

// SnapshotPixels renders the full-resolution image with the live rotation and
// color adjustments applied.
func (s *Surface) SnapshotPixels() (image.Image, error) {
	if s.source == nil {
		return nil, ErrNoImage
	}
	return s.render(s.source)
}

// Preview renders the downscaled display image
func (s *Surface) Preview() (image.Image, error) {
	if s.preview == nil {
		return nil, ErrNoImage
	}
	return s.render(s.preview)
}

func (s *Surface) render(src *image.NRGBA) (*image.NRGBA, error) {
	adjusted, err := s.engine.Apply(src, s.adjust)
	if err != nil {
		return nil, fmt.Errorf("color adjust with %s engine failed: %w", s.engine.Name(), err)
	}
	return rotate(adjusted, s.angle), nil
}

// rotate turns img clockwise by angle degrees about its center. Rotation
// about any other pivot differs only by a translation, which the expanded
// bounding box absorbs.
func rotate(img *image.NRGBA, angle float64) *image.NRGBA {
	normalized := math.Mod(angle, 360)
	if normalized < 0 {
		normalized += 360
	}

	// imaging rotates counter-clockwise
	switch normalized {
	case 0:
		return img
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	default:
		return imaging.Rotate(img, -normalized, color.Transparent)
	}
}
