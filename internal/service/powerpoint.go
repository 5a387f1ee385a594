package service

import (
	"github.com/bassista/go_pptcoach/internal/host"
)

// PowerPoint groups every capability over one connector. Build it once and
// share the pointer.
type PowerPoint struct {
	Connection    *Connection
	Presentations *PresentationManager
	Slides        *SlideOperations
	SlideQuery    *SlideQuery
	Shapes        *ShapeQuery
	Fonts         *FontQuery
}

func New(connector host.Connector) *PowerPoint {
	return &PowerPoint{
		Connection:    NewConnection(connector),
		Presentations: NewPresentationManager(),
		Slides:        NewSlideOperations(),
		SlideQuery:    NewSlideQuery(),
		Shapes:        NewShapeQuery(),
		Fonts:         NewFontQuery(),
	}
}

// ShapeInfo is a point-in-time description of one shape.
type ShapeInfo struct {
	Index     int        `json:"index"`
	Name      string     `json:"name"`
	Kind      string     `json:"kind"`
	Fill      host.RGB   `json:"fill"`
	Position  host.Point `json:"position"`
	Size      host.Size  `json:"size"`
	FontName  string     `json:"fontName,omitempty"`
	FontSize  float32    `json:"fontSize"`
	FontColor host.RGB   `json:"fontColor"`
	Error     string     `json:"error,omitempty"`
}

// DescribeShape collects every readable property of shape. The first failing
// property read is reported in Error; font properties never fail.
func (p *PowerPoint) DescribeShape(index int, shape host.Shape) ShapeInfo {
	info := ShapeInfo{Index: index}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	var err error
	info.Name, err = shape.Name()
	keep(err)
	info.Kind, err = p.Shapes.Kind(shape)
	keep(err)
	info.Fill, err = p.Shapes.FillColor(shape)
	keep(err)
	info.Position, err = p.Shapes.Position(shape)
	keep(err)
	info.Size, err = p.Shapes.Size(shape)
	keep(err)

	info.FontName, _ = p.Fonts.FontName(shape)
	info.FontSize = p.Fonts.FontSize(shape)
	info.FontColor = p.Fonts.FontColor(shape)

	if firstErr != nil {
		info.Error = firstErr.Error()
	}
	return info
}
