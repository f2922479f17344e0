package main

import (
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
)

// grid lays out widgets in an equally-spaced grid. Cells may span several
// columns.
type grid struct {
	rows, cols int
	spacing    unit.Dp
}

// gridCell is the placement of one widget in the grid.
type gridCell struct {
	row, col, span int
}

type gridWidget func(int, layout.Context) layout.Dimensions

// layout places n grid elements. place returns the cell of element i, widget
// draws it. This only really works well if spacing is non-zero because the
// cells are placed at integer coordinates. The grid will look slighly uneven
// with too little spacing.
func (g *grid) layout(gtx layout.Context, n int, place func(int) gridCell, widget gridWidget) layout.Dimensions {
	var (
		size  = gtx.Constraints.Max
		w, h  = float32(size.X), float32(size.Y)
		space = float32(gtx.Dp(g.spacing))
	)
	if g.cols > 0 {
		w = (w - float32(g.cols-1)*space) / float32(g.cols)
	}
	if g.rows > 0 {
		h = (h - float32(g.rows-1)*space) / float32(g.rows)
	}

	for i := 0; i < n; i++ {
		cell := place(i)
		span := max(cell.span, 1)
		pos := image.Point{
			X: int(float32(cell.col)*w + float32(cell.col)*space),
			Y: int(float32(cell.row)*h + float32(cell.row)*space),
		}
		cellSize := image.Pt(int(float32(span)*w+float32(span-1)*space), int(h))
		stack := op.Offset(pos).Push(gtx.Ops)
		cgtx := gtx
		cgtx.Constraints = layout.Exact(cellSize)
		widget(i, cgtx)
		stack.Pop()
	}
	return layout.Dimensions{Size: size}
}

// shrinkToFit renders w right-aligned at the bottom of the available space,
// scaling down if it doesn't fit into the available width.
func shrinkToFit(gtx layout.Context, w layout.Widget) layout.Dimensions {
	// Render w with near-infinite width.
	macro := op.Record(gtx.Ops)
	wide := gtx
	wide.Constraints.Min = image.Point{}
	wide.Constraints.Max.X = 10e6
	dim := w(wide)
	call := macro.Stop()

	var (
		avail = gtx.Constraints.Max
		scale = float32(1)
		x     = avail.X - dim.Size.X
	)
	// Scale down if it exceeds the available space.
	if x < 0 {
		scale = float32(avail.X) / float32(dim.Size.X)
		x = 0
	}
	y := float32(avail.Y) - float32(dim.Size.Y)*scale
	tr := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(scale, scale)).Offset(f32.Pt(float32(x), y))
	defer op.Affine(tr).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
	return layout.Dimensions{Size: avail}
}
