package service

import (
	"fmt"

	"github.com/bassista/go_pptcoach/internal/host"
)

// ShapeQuery reads shape properties.
type ShapeQuery struct{}

func NewShapeQuery() *ShapeQuery {
	return &ShapeQuery{}
}

// Kind maps the shape type code to a readable name.
func (q *ShapeQuery) Kind(shape host.Shape) (string, error) {
	t, err := shape.Type()
	if err != nil {
		return "", fmt.Errorf("get shape type: %w", err)
	}
	return host.ShapeKindName(t), nil
}

func (q *ShapeQuery) FillColor(shape host.Shape) (host.RGB, error) {
	v, err := shape.FillColor()
	if err != nil {
		return host.Black, fmt.Errorf("get fill colour: %w", err)
	}
	return host.ToRGB(v), nil
}

func (q *ShapeQuery) Position(shape host.Shape) (host.Point, error) {
	left, err := shape.Left()
	if err != nil {
		return host.Point{}, fmt.Errorf("get left: %w", err)
	}
	top, err := shape.Top()
	if err != nil {
		return host.Point{}, fmt.Errorf("get top: %w", err)
	}
	return host.Point{X: left, Y: top}, nil
}

func (q *ShapeQuery) Size(shape host.Shape) (host.Size, error) {
	width, err := shape.Width()
	if err != nil {
		return host.Size{}, fmt.Errorf("get width: %w", err)
	}
	height, err := shape.Height()
	if err != nil {
		return host.Size{}, fmt.Errorf("get height: %w", err)
	}
	return host.Size{Width: width, Height: height}, nil
}

// TableCellText reads the text of a table cell; row and col are 1-based.
func (q *ShapeQuery) TableCellText(shape host.Shape, row, col int) (string, error) {
	cell, err := shape.TableCell(row, col)
	if err != nil {
		return "", fmt.Errorf("get cell (%d,%d): %w", row, col, err)
	}
	defer host.Release(cell)

	tf, err := cell.TextFrame()
	if err != nil {
		return "", fmt.Errorf("get cell (%d,%d) text frame: %w", row, col, err)
	}
	defer host.Release(tf)

	return tf.Text()
}
