package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"photo-viewer/internal/models"
)

const sliderStep = 0.01

// ColorPanel holds one slider per color parameter plus a restore button
type ColorPanel struct {
	container *fyne.Container
	sliders   map[models.ColorParameter]*widget.Slider
	values    map[models.ColorParameter]*widget.Label

	changeHandler  func(models.ColorParameter, float64)
	restoreHandler func()

	// updating suppresses change events while values are set programmatically
	updating bool
}

func NewColorPanel() *ColorPanel {
	cp := &ColorPanel{
		sliders: make(map[models.ColorParameter]*widget.Slider),
		values:  make(map[models.ColorParameter]*widget.Label),
	}
	cp.buildLayout()
	return cp
}

func (cp *ColorPanel) buildLayout() {
	rows := container.NewVBox()
	for _, param := range models.ColorParameters {
		slider := widget.NewSlider(models.ColorAdjustMin, models.ColorAdjustMax)
		slider.Step = sliderStep
		value := widget.NewLabel(formatSliderValue(0))

		slider.OnChanged = func(v float64) {
			value.SetText(formatSliderValue(v))
			if cp.updating || cp.changeHandler == nil {
				return
			}
			cp.changeHandler(param, v)
		}

		cp.sliders[param] = slider
		cp.values[param] = value
		rows.Add(container.NewBorder(nil, nil, widget.NewLabel(string(param)), value, slider))
	}

	restore := widget.NewButton("Restore to Original", func() {
		if cp.restoreHandler != nil {
			cp.restoreHandler()
		}
	})
	hide := widget.NewButton("Hide", func() {
		cp.container.Hide()
	})

	cp.container = container.NewVBox(
		widget.NewSeparator(),
		rows,
		container.NewHBox(restore, hide),
	)
	cp.container.Hide()
}

// SetValues moves the sliders without emitting change events
func (cp *ColorPanel) SetValues(adjust models.ColorAdjust) {
	cp.updating = true
	defer func() { cp.updating = false }()

	for _, param := range models.ColorParameters {
		cp.sliders[param].SetValue(adjust.Get(param))
	}
}

// Values reads the sliders back into a bundle
func (cp *ColorPanel) Values() models.ColorAdjust {
	var adjust models.ColorAdjust
	for _, param := range models.ColorParameters {
		adjust, _ = adjust.With(param, cp.sliders[param].Value)
	}
	return adjust
}

func (cp *ColorPanel) Show() {
	cp.container.Show()
}

func (cp *ColorPanel) Visible() bool {
	return cp.container.Visible()
}

// Slider returns the slider for param, for focusing from the menu
func (cp *ColorPanel) Slider(param models.ColorParameter) *widget.Slider {
	return cp.sliders[param]
}

func (cp *ColorPanel) SetChangeHandler(handler func(models.ColorParameter, float64)) {
	cp.changeHandler = handler
}

func (cp *ColorPanel) SetRestoreHandler(handler func()) {
	cp.restoreHandler = handler
}

func (cp *ColorPanel) GetContainer() *fyne.Container {
	return cp.container
}

func formatSliderValue(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}
