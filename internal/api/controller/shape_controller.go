package controller

import (
	"net/http"

	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/service"
	"github.com/gin-gonic/gin"
)

type ShapeController struct {
	presenter Presenter
	pp        *service.PowerPoint
}

func NewShapeController(presenter Presenter, pp *service.PowerPoint) *ShapeController {
	return &ShapeController{presenter: presenter, pp: pp}
}

// slide resolves the :index parameter against the current presentation.
// The caller releases the slide.
func (sc *ShapeController) slide(c *gin.Context) (host.Slide, error) {
	index, err := positiveParam(c, "index")
	if err != nil {
		return nil, err
	}
	doc, err := sc.presenter.Current()
	if err != nil {
		return nil, err
	}
	return sc.pp.SlideQuery.Slide(doc, index)
}

// List handles GET /slides/:index/shapes. Properties that cannot be read
// are reported per shape and do not fail the request.
func (sc *ShapeController) List(c *gin.Context) {
	slide, err := sc.slide(c)
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}
	defer host.Release(slide)

	shapes, err := sc.pp.SlideQuery.Shapes(slide)
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}
	infos := make([]service.ShapeInfo, 0, len(shapes))
	for i, shape := range shapes {
		infos = append(infos, sc.pp.DescribeShape(i+1, shape))
		host.Release(shape)
	}
	c.JSON(http.StatusOK, infos)
}

// Cell handles GET /slides/:index/shapes/:shape/cell?row=&col=.
func (sc *ShapeController) Cell(c *gin.Context) {
	shapeIndex, err := positiveParam(c, "shape")
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}
	row, err := positiveQuery(c, "row")
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}
	col, err := positiveQuery(c, "col")
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}

	slide, err := sc.slide(c)
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}
	defer host.Release(slide)

	shape, err := slide.Shape(shapeIndex)
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}
	defer host.Release(shape)

	text, err := sc.pp.Shapes.TableCellText(shape, row, col)
	if err != nil {
		respondError(c, "shape-controller", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"row": row, "col": col, "text": text})
}
