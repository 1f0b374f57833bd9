package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"photo-viewer/internal/models"
)

// ColorEngine applies a color-adjust bundle to an image
type ColorEngine interface {
	Name() string
	Apply(img *image.NRGBA, adjust models.ColorAdjust) (*image.NRGBA, error)
}

// NewColorEngine returns the engine registered under name
func NewColorEngine(name string) (ColorEngine, error) {
	switch name {
	case "", "imaging":
		return ImagingEngine{}, nil
	case "opencv":
		return newOpenCVEngine()
	default:
		return nil, fmt.Errorf("unknown color engine %q", name)
	}
}

// ImagingEngine maps the [-1, 1] bundle onto imaging's percentage adjustments.
// Hue is a rotation of up to 180 degrees in either direction.
type ImagingEngine struct{}

func (ImagingEngine) Name() string { return "imaging" }

func (ImagingEngine) Apply(img *image.NRGBA, adjust models.ColorAdjust) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	adjust = adjust.Clamp()
	if adjust.IsIdentity() {
		return img, nil
	}

	out := img
	if adjust.Hue != 0 {
		shift := adjust.Hue * 180
		out = imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
			return shiftHue(c, shift)
		})
	}
	if adjust.Saturation != 0 {
		out = imaging.AdjustSaturation(out, adjust.Saturation*100)
	}
	if adjust.Contrast != 0 {
		out = imaging.AdjustContrast(out, adjust.Contrast*100)
	}
	if adjust.Brightness != 0 {
		out = imaging.AdjustBrightness(out, adjust.Brightness*100)
	}
	return out, nil
}

func shiftHue(c color.NRGBA, degrees float64) color.NRGBA {
	h, s, l := rgbToHSL(c.R, c.G, c.B)
	if s == 0 {
		return c
	}
	h = math.Mod(h+degrees/360, 1)
	if h < 0 {
		h++
	}
	r, g, b := hslToRGB(h, s, l)
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

func rgbToHSL(r8, g8, b8 uint8) (h, s, l float64) {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2
	if maxC == minC {
		return 0, 0, l
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r := hueToChannel(p, q, h+1.0/3)
	g := hueToChannel(p, q, h)
	b := hueToChannel(p, q, h-1.0/3)
	return toByte(r), toByte(g), toByte(b)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func toByte(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
