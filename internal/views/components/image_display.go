package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	busyIndicatorSize = 100
	placeholderText   = "Open an image or drop files here"
)

// ImageDisplay shows the current image with a centered busy indicator and a
// floating previous/next control in the bottom-right corner
type ImageDisplay struct {
	container   *fyne.Container
	image       *canvas.Image
	placeholder *widget.Label
	busy        *widget.ProgressBarInfinite
	busyOverlay *fyne.Container

	previousButton *widget.Button
	nextButton     *widget.Button

	previousHandler func()
	nextHandler     func()

	hasImage bool
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.image = canvas.NewImageFromImage(nil)
	id.image.FillMode = canvas.ImageFillContain
	id.image.ScaleMode = canvas.ImageScaleSmooth
	id.image.Hide()

	id.placeholder = widget.NewLabel(placeholderText)
	id.placeholder.Alignment = fyne.TextAlignCenter

	id.busy = widget.NewProgressBarInfinite()
	id.busy.Stop()

	id.previousButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		if id.previousHandler != nil {
			id.previousHandler()
		}
	})
	id.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		if id.nextHandler != nil {
			id.nextHandler()
		}
	})
	id.previousButton.Disable()
	id.nextButton.Disable()
}

func (id *ImageDisplay) setupLayout() {
	background := canvas.NewRectangle(color.Black)

	busyBox := container.NewGridWrap(fyne.NewSize(busyIndicatorSize, theme.Padding()*4), id.busy)
	id.busyOverlay = container.NewCenter(busyBox)
	id.busyOverlay.Hide()

	navigation := container.NewVBox(
		layout.NewSpacer(),
		container.NewHBox(layout.NewSpacer(), id.previousButton, id.nextButton),
	)

	id.container = container.NewStack(
		background,
		container.NewCenter(id.placeholder),
		id.image,
		id.busyOverlay,
		container.NewPadded(navigation),
	)
}

// SetImage replaces the displayed image
func (id *ImageDisplay) SetImage(img image.Image) {
	id.image.Image = img
	id.hasImage = img != nil
	if id.hasImage {
		id.placeholder.Hide()
		id.image.Show()
	} else {
		id.image.Hide()
		id.placeholder.Show()
	}
	id.image.Refresh()
}

func (id *ImageDisplay) HasImage() bool {
	return id.hasImage
}

// SetBusy shows or hides the centered busy indicator
func (id *ImageDisplay) SetBusy(busy bool) {
	if busy {
		id.busyOverlay.Show()
		id.busy.Start()
		return
	}
	id.busy.Stop()
	id.busyOverlay.Hide()
}

func (id *ImageDisplay) IsBusy() bool {
	return id.busyOverlay.Visible()
}

// SetNavigation enables the previous and next buttons
func (id *ImageDisplay) SetNavigation(canPrevious, canNext bool) {
	setEnabled(id.previousButton, canPrevious)
	setEnabled(id.nextButton, canNext)
}

func (id *ImageDisplay) SetPreviousHandler(handler func()) {
	id.previousHandler = handler
}

func (id *ImageDisplay) SetNextHandler(handler func()) {
	id.nextHandler = handler
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
	} else {
		button.Disable()
	}
}
