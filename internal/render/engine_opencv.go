//go:build opencv

package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"photo-viewer/internal/models"
)

// OpenCVEngine performs hue and saturation in OpenCV's 8-bit HSV space,
// where hue spans 0..179. Brightness and contrast stay on imaging.
type OpenCVEngine struct{}

func newOpenCVEngine() (ColorEngine, error) {
	return OpenCVEngine{}, nil
}

func (OpenCVEngine) Name() string { return "opencv" }

func (OpenCVEngine) Apply(img *image.NRGBA, adjust models.ColorAdjust) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	adjust = adjust.Clamp()
	if adjust.IsIdentity() {
		return img, nil
	}

	out := img
	if adjust.Hue != 0 || adjust.Saturation != 0 {
		shifted, err := adjustHSV(img, adjust.Hue, adjust.Saturation)
		if err != nil {
			return nil, err
		}
		out = shifted
	}
	if adjust.Contrast != 0 {
		out = imaging.AdjustContrast(out, adjust.Contrast*100)
	}
	if adjust.Brightness != 0 {
		out = imaging.AdjustBrightness(out, adjust.Brightness*100)
	}
	return out, nil
}

func adjustHSV(img *image.NRGBA, hue, saturation float64) (*image.NRGBA, error) {
	bgr, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("image to Mat conversion failed: %w", err)
	}
	defer bgr.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	data, err := hsv.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("HSV data access failed: %w", err)
	}

	hueShift := int(hue * 90)
	satScale := 1 + saturation
	for i := 0; i+2 < len(data); i += 3 {
		h := (int(data[i]) + hueShift) % 180
		if h < 0 {
			h += 180
		}
		data[i] = uint8(h)

		s := float64(data[i+1]) * satScale
		if s > 255 {
			s = 255
		}
		data[i+1] = uint8(s)
	}

	result := gocv.NewMat()
	defer result.Close()
	gocv.CvtColor(hsv, &result, gocv.ColorHSVToBGR)

	converted, err := result.ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat to image conversion failed: %w", err)
	}

	out := imaging.Clone(converted)
	copyAlpha(out, img)
	return out, nil
}

func copyAlpha(dst, src *image.NRGBA) {
	for i := 3; i < len(dst.Pix) && i < len(src.Pix); i += 4 {
		dst.Pix[i] = src.Pix[i]
	}
}
