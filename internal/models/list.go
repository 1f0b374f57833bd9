package models

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNoCurrentImage = errors.New("no current image")
	ErrOutOfRange     = errors.New("cursor would leave the image list")
	ErrNoSuchImage    = errors.New("image not in list")
)

const noCursor = -1

// ImageList is the ordered, append-only collection of images with a cursor
// pointing at the current one.
type ImageList struct {
	mu     sync.RWMutex
	images []*ImageInfo
	cursor int
}

func NewImageList() *ImageList {
	return &ImageList{
		images: make([]*ImageInfo, 0),
		cursor: noCursor,
	}
}

// AddImage appends a new entry and makes it the current one
func (l *ImageList) AddImage(url string) *ImageInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	info := NewImageInfo(url)
	l.images = append(l.images, info)
	l.cursor = len(l.images) - 1
	return info
}

// GoPrevious moves the cursor back by one. Callers check IsAtBeginning first.
func (l *ImageList) GoPrevious() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor <= 0 {
		return ErrOutOfRange
	}
	l.cursor--
	return nil
}

// GoNext moves the cursor forward by one. Callers check IsAtEnd first.
func (l *ImageList) GoNext() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor < 0 || l.cursor >= len(l.images)-1 {
		return ErrOutOfRange
	}
	l.cursor++
	return nil
}

func (l *ImageList) IsAtBeginning() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cursor == 0
}

func (l *ImageList) IsAtEnd() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images) > 0 && l.cursor == len(l.images)-1
}

// CurrentIndex returns the cursor, -1 when the list is empty
func (l *ImageList) CurrentIndex() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cursor
}

func (l *ImageList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.images)
}

// Current returns the image at the cursor
func (l *ImageList) Current() (*ImageInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.cursor < 0 || l.cursor >= len(l.images) {
		return nil, ErrNoCurrentImage
	}
	return l.images[l.cursor], nil
}

// Find returns the entry with the given identity
func (l *ImageList) Find(id uuid.UUID) (*ImageInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, info := range l.images {
		if info.ID() == id {
			return info, nil
		}
	}
	return nil, fmt.Errorf("image %s: %w", id, ErrNoSuchImage)
}
