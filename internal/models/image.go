package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ColorParameter names one of the four color-adjust parameters
type ColorParameter string

const (
	Hue        ColorParameter = "Hue"
	Saturation ColorParameter = "Saturation"
	Brightness ColorParameter = "Brightness"
	Contrast   ColorParameter = "Contrast"
)

// ColorParameters lists the parameters in menu order
var ColorParameters = []ColorParameter{Hue, Saturation, Brightness, Contrast}

const (
	ColorAdjustMin = -1.0
	ColorAdjustMax = 1.0
)

// ColorAdjust is the hue/saturation/brightness/contrast bundle applied to a rendered image.
// The zero value is the identity adjustment.
type ColorAdjust struct {
	Hue        float64
	Saturation float64
	Brightness float64
	Contrast   float64
}

// IsIdentity returns true when every parameter is zero
func (c ColorAdjust) IsIdentity() bool {
	return c == ColorAdjust{}
}

// Clamp returns a copy with every parameter limited to [-1, 1]
func (c ColorAdjust) Clamp() ColorAdjust {
	return ColorAdjust{
		Hue:        clamp(c.Hue),
		Saturation: clamp(c.Saturation),
		Brightness: clamp(c.Brightness),
		Contrast:   clamp(c.Contrast),
	}
}

// Get returns the value of a single parameter
func (c ColorAdjust) Get(param ColorParameter) float64 {
	switch param {
	case Hue:
		return c.Hue
	case Saturation:
		return c.Saturation
	case Brightness:
		return c.Brightness
	case Contrast:
		return c.Contrast
	}
	return 0
}

// With returns a copy with one parameter replaced
func (c ColorAdjust) With(param ColorParameter, value float64) (ColorAdjust, error) {
	value = clamp(value)
	switch param {
	case Hue:
		c.Hue = value
	case Saturation:
		c.Saturation = value
	case Brightness:
		c.Brightness = value
	case Contrast:
		c.Contrast = value
	default:
		return c, fmt.Errorf("unknown color parameter %q", param)
	}
	return c, nil
}

func clamp(v float64) float64 {
	if v < ColorAdjustMin {
		return ColorAdjustMin
	}
	if v > ColorAdjustMax {
		return ColorAdjustMax
	}
	return v
}

// ImageInfo holds the source location and the per-image transform state.
// Instances are only touched from the UI thread.
type ImageInfo struct {
	id          uuid.UUID
	url         string
	degrees     float64
	colorAdjust ColorAdjust
}

// NewImageInfo creates an ImageInfo with identity transforms
func NewImageInfo(url string) *ImageInfo {
	return &ImageInfo{
		id:  uuid.New(),
		url: url,
	}
}

func (i *ImageInfo) ID() uuid.UUID {
	return i.id
}

func (i *ImageInfo) URL() string {
	return i.url
}

func (i *ImageInfo) Degrees() float64 {
	return i.degrees
}

// AddDegrees accumulates rotation. The angle is never normalized.
func (i *ImageInfo) AddDegrees(delta float64) {
	i.degrees += delta
}

func (i *ImageInfo) ColorAdjust() ColorAdjust {
	return i.colorAdjust
}

func (i *ImageInfo) SetColorAdjust(adjust ColorAdjust) {
	i.colorAdjust = adjust
}

func (i *ImageInfo) String() string {
	return fmt.Sprintf("ImageInfo{%s, %s, %.0f°}", i.id, i.url, i.degrees)
}
