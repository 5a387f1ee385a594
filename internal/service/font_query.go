package service

import (
	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/logger"
)

// FontQuery reads the font of a shape's text. None of its methods fail:
// a shape without text simply has no font.
type FontQuery struct{}

func NewFontQuery() *FontQuery {
	return &FontQuery{}
}

// FontName returns ok=false when no font applies.
func (q *FontQuery) FontName(shape host.Shape) (name string, ok bool) {
	font, ok := fontOf(shape)
	if !ok {
		return "", false
	}
	defer host.Release(font)

	name, err := font.Name()
	if err != nil {
		logger.WithComponent("fonts").Debugf("font name unreadable: %v", err)
		return "", false
	}
	return name, true
}

// FontSize returns 0 when no font applies.
func (q *FontQuery) FontSize(shape host.Shape) float32 {
	font, ok := fontOf(shape)
	if !ok {
		return 0
	}
	defer host.Release(font)

	size, err := font.Size()
	if err != nil {
		logger.WithComponent("fonts").Debugf("font size unreadable: %v", err)
		return 0
	}
	return size
}

// FontColor returns black when no font applies.
func (q *FontQuery) FontColor(shape host.Shape) host.RGB {
	font, ok := fontOf(shape)
	if !ok {
		return host.Black
	}
	defer host.Release(font)

	v, err := font.Color()
	if err != nil {
		logger.WithComponent("fonts").Debugf("font colour unreadable: %v", err)
		return host.Black
	}
	return host.ToRGB(v)
}

// fontOf checks both tri-state flags before touching the font.
func fontOf(shape host.Shape) (host.Font, bool) {
	if shape == nil {
		return nil, false
	}
	has, err := shape.HasTextFrame()
	if err != nil || has == host.TriStateFalse {
		return nil, false
	}
	tf, err := shape.TextFrame()
	if err != nil {
		return nil, false
	}
	defer host.Release(tf)

	hasText, err := tf.HasText()
	if err != nil || hasText == host.TriStateFalse {
		return nil, false
	}
	font, err := tf.Font()
	if err != nil {
		return nil, false
	}
	return font, true
}
