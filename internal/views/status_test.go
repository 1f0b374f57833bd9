package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"photo-viewer/internal/controllers"
	"photo-viewer/internal/services"
)

func TestFormatStatus_Empty(t *testing.T) {
	name, position, detail := formatStatus(controllers.Status{})

	assert.Equal(t, "No image loaded", name)
	assert.Empty(t, position)
	assert.Empty(t, detail)
}

func TestFormatStatus_Displayed(t *testing.T) {
	status := controllers.Status{
		State:  controllers.Displayed,
		Name:   "beach.jpg",
		Index:  2,
		Count:  5,
		Width:  4000,
		Height: 3000,
		Exif: services.ExifSummary{
			Make:     "FUJIFILM",
			Model:    "X100V",
			Taken:    time.Date(2023, 7, 14, 18, 30, 0, 0, time.UTC),
			HasTaken: true,
		},
	}

	name, position, detail := formatStatus(status)

	assert.Equal(t, "beach.jpg", name)
	assert.Equal(t, "2 / 5", position)
	assert.Equal(t, "4000 × 3000  FUJIFILM X100V  2023-07-14 18:30", detail)
}

func TestFormatStatus_Loading(t *testing.T) {
	name, _, detail := formatStatus(controllers.Status{State: controllers.Loading, Name: "a.png", Index: 1, Count: 1})

	assert.Equal(t, "a.png (loading)", name)
	assert.Empty(t, detail)
}
