package eventbus

import "photo-viewer/internal/models"

type Topic string

const (
	Open          Topic = "open"
	OpenFolder    Topic = "open-folder"
	Drop          Topic = "drop"
	Next          Topic = "next"
	Previous      Topic = "previous"
	RotateLeft    Topic = "rotate-left"
	RotateRight   Topic = "rotate-right"
	SetColor      Topic = "set-color"
	RestoreColors Topic = "restore-colors"
	SaveAs        Topic = "save-as"
	Quit          Topic = "quit"
)

// Topics is the closed set of events the viewer reacts to
var Topics = []Topic{
	Open, OpenFolder, Drop, Next, Previous,
	RotateLeft, RotateRight, SetColor, RestoreColors, SaveAs, Quit,
}

// Event carries the payload for a topic. Only the fields relevant to the
// topic are set.
type Event struct {
	Topic Topic
	// URLs is set for Open and Drop, Path for OpenFolder and SaveAs
	URLs  []string
	Path  string
	Param models.ColorParameter
	Value float64
}

func (e Event) String() string {
	return string(e.Topic)
}
