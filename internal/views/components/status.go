package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows the current file, its position in the list and image details
type StatusBar struct {
	container     *fyne.Container
	nameLabel     *widget.Label
	positionLabel *widget.Label
	detailLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.nameLabel = widget.NewLabel("No image loaded")
	sb.nameLabel.Truncation = fyne.TextTruncateEllipsis
	sb.positionLabel = widget.NewLabel("")
	sb.detailLabel = widget.NewLabel("")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		nil, nil,
		nil,
		container.NewHBox(
			widget.NewSeparator(),
			sb.positionLabel,
			widget.NewSeparator(),
			sb.detailLabel,
		),
		sb.nameLabel,
	)
}

func (sb *StatusBar) SetInfo(name, position, detail string) {
	sb.nameLabel.SetText(name)
	sb.positionLabel.SetText(position)
	sb.detailLabel.SetText(detail)
}

func (sb *StatusBar) GetName() string {
	return sb.nameLabel.Text
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
