package render

import (
	"image"
	"image/color"
	"math"
)

// rectF прямоугольник в вещественных координатах пикселей
type rectF struct {
	x0, y0, x1, y1 float64
}

func (r rectF) inset(d float64) rectF {
	return rectF{x0: r.x0 + d, y0: r.y0 + d, x1: r.x1 - d, y1: r.y1 - d}
}

func (r rectF) overlaps(o rectF) bool {
	return r.x0 < o.x1 && o.x0 < r.x1 && r.y0 < o.y1 && o.y0 < r.y1
}

func (r rectF) rect() image.Rectangle {
	return image.Rect(
		int(math.Round(r.x0)), int(math.Round(r.y0)),
		int(math.Round(r.x1)), int(math.Round(r.y1)),
	)
}

// containsRounded проверяет попадание точки в скругленный прямоугольник
func containsRounded(r rectF, radius, x, y float64) bool {
	if x < r.x0 || x >= r.x1 || y < r.y0 || y >= r.y1 {
		return false
	}
	if radius <= 0 {
		return true
	}
	cx := math.Min(math.Max(x, r.x0+radius), r.x1-radius)
	cy := math.Min(math.Max(y, r.y0+radius), r.y1-radius)
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}

// fillRounded закрашивает пиксели, центры которых попадают в фигуру
func fillRounded(img *image.RGBA, r rectF, radius float64, c color.RGBA) {
	fill(img, r, c, func(x, y float64) bool {
		return containsRounded(r, radius, x, y)
	})
}

// fillRing закрашивает область между внешней и внутренней фигурой
func fillRing(img *image.RGBA, outer rectF, outerRadius float64, inner rectF, innerRadius float64, c color.RGBA) {
	fill(img, outer, c, func(x, y float64) bool {
		return containsRounded(outer, outerRadius, x, y) && !containsRounded(inner, innerRadius, x, y)
	})
}

func fill(img *image.RGBA, bounds rectF, c color.RGBA, inside func(x, y float64) bool) {
	b := bounds.rect().Inset(-1).Intersect(img.Bounds())
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			if inside(float64(px)+0.5, float64(py)+0.5) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}
