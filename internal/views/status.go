package views

import (
	"fmt"
	"strings"

	"photo-viewer/internal/controllers"
)

const takenLayout = "2006-01-02 15:04"

// formatStatus renders the status bar fields for a selection
func formatStatus(s controllers.Status) (name, position, detail string) {
	if s.Count == 0 {
		return "No image loaded", "", ""
	}

	name = s.Name
	switch s.State {
	case controllers.Loading:
		name += " (loading)"
	case controllers.Failed:
		name += " (failed to load)"
	}

	position = fmt.Sprintf("%d / %d", s.Index, s.Count)

	var parts []string
	if s.Width > 0 && s.Height > 0 {
		parts = append(parts, fmt.Sprintf("%d × %d", s.Width, s.Height))
	}
	if !s.Exif.IsEmpty() {
		if camera := s.Exif.Camera(); camera != "" {
			parts = append(parts, camera)
		}
		if s.Exif.HasTaken {
			parts = append(parts, s.Exif.Taken.Format(takenLayout))
		}
	}
	detail = strings.Join(parts, "  ")
	return name, position, detail
}
