package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-viewer/internal/models"
)

// markedImage is w x h grey with a red pixel in the top-left corner
func markedImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 128, 128, 128, 255
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	return img
}

func TestSurface_SnapshotWithoutPixels(t *testing.T) {
	s := NewSurface(nil, 0)

	_, err := s.SnapshotPixels()
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = s.Preview()
	assert.ErrorIs(t, err, ErrNoImage)
	assert.False(t, s.HasPixels())
}

func TestSurface_SizeAndCenter(t *testing.T) {
	s := NewSurface(nil, 0)
	s.SetPixels(markedImage(40, 20))

	w, h := s.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)
	assert.Equal(t, Pivot{X: 20, Y: 10}, s.Center())
}

func TestSurface_RotateClockwise(t *testing.T) {
	s := NewSurface(nil, 0)
	s.SetPixels(markedImage(4, 2))
	s.ApplyRotation(90, s.Center())

	out, err := s.SnapshotPixels()
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 2, 4), out.Bounds())
	r, _, _, _ := out.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r, "top-left marker moves to top-right")
}

func TestSurface_RotateCounterClockwise(t *testing.T) {
	s := NewSurface(nil, 0)
	s.SetPixels(markedImage(4, 2))
	s.ApplyRotation(-90, s.Center())

	out, err := s.SnapshotPixels()
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 2, 4), out.Bounds())
	r, _, _, _ := out.At(0, 3).RGBA()
	assert.Equal(t, uint32(0xffff), r, "top-left marker moves to bottom-left")
}

func TestSurface_FullTurnIsIdentity(t *testing.T) {
	src := markedImage(4, 2)
	s := NewSurface(nil, 0)
	s.SetPixels(src)
	s.ApplyRotation(720, s.Center())

	out, err := s.SnapshotPixels()
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.(*image.NRGBA).Pix)
}

func TestSurface_RotationState(t *testing.T) {
	s := NewSurface(nil, 0)
	s.ApplyRotation(-270, Pivot{X: 3, Y: 4})

	angle, pivot := s.Rotation()
	assert.Equal(t, -270.0, angle)
	assert.Equal(t, Pivot{X: 3, Y: 4}, pivot)
}

func TestSurface_ColorAdjustIsClamped(t *testing.T) {
	s := NewSurface(nil, 0)
	s.ApplyColorAdjust(models.ColorAdjust{Hue: 3, Contrast: -2})

	assert.Equal(t, models.ColorAdjust{Hue: 1, Contrast: -1}, s.ColorAdjust())
}

func TestSurface_BrightnessChangesPixels(t *testing.T) {
	s := NewSurface(nil, 0)
	s.SetPixels(markedImage(2, 2))
	s.ApplyColorAdjust(models.ColorAdjust{Brightness: -1})

	out, err := s.SnapshotPixels()
	require.NoError(t, err)

	r, g, b, _ := out.At(1, 1).RGBA()
	assert.Zero(t, r+g+b)
}

func TestSurface_PreviewIsDownscaled(t *testing.T) {
	s := NewSurface(nil, 100)
	s.SetPixels(markedImage(400, 200))

	preview, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, 100, preview.Bounds().Dx())
	assert.Equal(t, 50, preview.Bounds().Dy())

	full, err := s.SnapshotPixels()
	require.NoError(t, err)
	assert.Equal(t, 400, full.Bounds().Dx())
}

func TestSurface_SetPixelsNilClears(t *testing.T) {
	s := NewSurface(nil, 0)
	s.SetPixels(markedImage(2, 2))
	s.SetPixels(nil)

	assert.False(t, s.HasPixels())
}
