// Package render draws styled QR symbols and exports them as images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"

	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/validation"
)

// finderSize сторона поискового узора в модулях
const finderSize = 7

// ErrEmptyData indicates an attempt to render an empty payload.
var ErrEmptyData = errors.New("nothing to encode: payload is empty")

// Symbol is an encoded QR code together with the style used to draw it.
type Symbol struct {
	logo    image.Image
	modules [][]bool
	style   models.StyleOptions
	colors  palette
}

type palette struct {
	dot, background, cornerSquare, cornerDot color.RGBA
}

// New encodes data and prepares a symbol drawn with st. logoImg may be nil.
func New(data string, st models.StyleOptions, logoImg image.Image) (*Symbol, error) {
	if data == "" {
		return nil, ErrEmptyData
	}

	q, err := qrcode.New(data, recoveryLevel(st.ErrorCorrection))
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	// Отступ рисуем сами по Margin из стиля
	q.DisableBorder = true

	colors, err := parsePalette(st)
	if err != nil {
		return nil, err
	}

	if st.Size <= 0 {
		return nil, fmt.Errorf("invalid size %d", st.Size)
	}

	return &Symbol{
		logo:    logoImg,
		modules: q.Bitmap(),
		style:   st,
		colors:  colors,
	}, nil
}

// Modules returns the side length of the symbol in modules.
func (s *Symbol) Modules() int {
	return len(s.modules)
}

// Dark reports whether the module at row r, column c is dark.
func (s *Symbol) Dark(r, c int) bool {
	return s.modules[r][c]
}

func recoveryLevel(l models.ErrorCorrection) qrcode.RecoveryLevel {
	switch l {
	case models.ErrorCorrectionL:
		return qrcode.Low
	case models.ErrorCorrectionM:
		return qrcode.Medium
	case models.ErrorCorrectionH:
		return qrcode.Highest
	default:
		return qrcode.High // Q
	}
}

func parsePalette(st models.StyleOptions) (palette, error) {
	var p palette
	for _, c := range []struct {
		dst   *color.RGBA
		value string
		def   string
	}{
		{&p.dot, st.DotColor, "#000000"},
		{&p.background, st.Background, "#ffffff"},
		{&p.cornerSquare, st.CornerSquareColor, st.DotColor},
		{&p.cornerDot, st.CornerDotColor, st.DotColor},
	} {
		v := c.value
		if v == "" {
			v = c.def
		}
		if v == "" {
			v = "#000000"
		}
		rgba, err := ParseHexColor(v)
		if err != nil {
			return palette{}, err
		}
		*c.dst = rgba
	}
	return p, nil
}

// ParseHexColor parses #rgb or #rrggbb into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	if err := validation.ValidateHexColor(s); err != nil {
		return color.RGBA{}, err
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// geometry описывает раскладку модулей в пикселях
type geometry struct {
	size   int
	margin float64
	module float64
	n      int
}

func (s *Symbol) geometry() geometry {
	n := len(s.modules)
	size := s.style.Size
	margin := float64(min(max(s.style.Margin, 0), size/4))
	return geometry{
		size:   size,
		margin: margin,
		module: (float64(size) - 2*margin) / float64(n),
		n:      n,
	}
}

// cell возвращает прямоугольник модуля (row, col) в пикселях
func (g geometry) cell(row, col int) rectF {
	x := g.margin + float64(col)*g.module
	y := g.margin + float64(row)*g.module
	return rectF{x0: x, y0: y, x1: x + g.module, y1: y + g.module}
}

// block возвращает прямоугольник size×size модулей начиная с (row, col)
func (g geometry) block(row, col, size int) rectF {
	r := g.cell(row, col)
	r.x1 = r.x0 + float64(size)*g.module
	r.y1 = r.y0 + float64(size)*g.module
	return r
}

// finderOrigins левые верхние углы трех поисковых узоров
func (g geometry) finderOrigins() [3][2]int {
	return [3][2]int{{0, 0}, {0, g.n - finderSize}, {g.n - finderSize, 0}}
}

func (g geometry) inFinder(row, col int) bool {
	for _, o := range g.finderOrigins() {
		if row >= o[0] && row < o[0]+finderSize && col >= o[1] && col < o[1]+finderSize {
			return true
		}
	}
	return false
}

// logoRect область логотипа в центре символа (без учета отступа)
func (s *Symbol) logoRect(g geometry) (rectF, bool) {
	if s.logo == nil || s.style.Logo == nil {
		return rectF{}, false
	}
	inner := float64(g.size) - 2*g.margin
	side := inner * s.style.Logo.Size
	c := float64(g.size) / 2
	return rectF{x0: c - side/2, y0: c - side/2, x1: c + side/2, y1: c + side/2}, true
}

// Image draws the symbol as an RGBA raster of Size×Size pixels.
func (s *Symbol) Image() *image.RGBA {
	g := s.geometry()
	img := image.NewRGBA(image.Rect(0, 0, g.size, g.size))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.colors.background), image.Point{}, draw.Src)

	logoArea, hasLogo := s.logoRect(g)
	pad := 0.0
	if hasLogo {
		pad = float64(s.style.Logo.Margin)
	}
	cleared := logoArea.inset(-pad)

	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			if !s.modules[row][col] || g.inFinder(row, col) {
				continue
			}
			cell := g.cell(row, col)
			if hasLogo && cleared.overlaps(cell) {
				continue
			}
			fillRounded(img, cell, dotRadius(s.style.DotShape, g.module), s.colors.dot)
		}
	}

	for _, o := range g.finderOrigins() {
		outer := g.block(o[0], o[1], finderSize)
		inner := g.block(o[0]+1, o[1]+1, finderSize-2)
		fillRing(img, outer, cornerRadius(s.style.CornerSquareShape, outer), inner, cornerRadius(s.style.CornerSquareShape, inner), s.colors.cornerSquare)

		dot := g.block(o[0]+2, o[1]+2, 3)
		fillRounded(img, dot, cornerRadius(s.style.CornerDotShape, dot), s.colors.cornerDot)
	}

	if hasLogo {
		lr := logoArea.rect()
		draw.CatmullRom.Scale(img, lr, s.logo, s.logo.Bounds(), draw.Over, nil)
	}

	return img
}

func dotRadius(shape models.DotShape, module float64) float64 {
	switch shape {
	case models.DotCircle:
		return module / 2
	case models.DotRounded:
		return module * 0.3
	default:
		return 0
	}
}

func cornerRadius(shape models.CornerShape, r rectF) float64 {
	side := r.x1 - r.x0
	switch shape {
	case models.CornerDot:
		return side / 2
	case models.CornerExtraRounded:
		return side * 0.3
	default:
		return 0
	}
}
