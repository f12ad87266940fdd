package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyTurn indicates a turn with neither text nor image.
var ErrEmptyTurn = errors.New("turn has neither text nor image")

// Image is an already-decoded inline image.
type Image struct {
	Data     []byte
	MIMEType string
}

// Turn is one user submission: optional text, optional image, at least one present.
type Turn struct {
	Text  string
	Image *Image
}

// HasText reports whether the turn carries non-blank text.
func (t Turn) HasText() bool {
	return strings.TrimSpace(t.Text) != ""
}

// HasImage reports whether the turn carries an image payload.
func (t Turn) HasImage() bool {
	return t.Image != nil && len(t.Image.Data) > 0
}

func (t Turn) Validate() error {
	if !t.HasText() && !t.HasImage() {
		return ErrEmptyTurn
	}
	return nil
}

// ChatMessage is one transcript line.
type ChatMessage struct {
	ID        string
	Mobile    string
	Persona   Persona
	Role      MessageRole
	Language  Language
	Text      string
	ImageMIME string
	CreatedAt time.Time
}
