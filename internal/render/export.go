package render

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
)

// Format формат экспорта изображения
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// PreviewSize сторона миниатюры для истории
const PreviewSize = 128

const jpegQuality = 92

// ParseFormat accepts png, jpeg (or jpg) and svg, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want png, jpeg or svg)", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Export writes the symbol to w in the given format.
func (s *Symbol) Export(w io.Writer, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, s.Image())
	case FormatJPEG:
		return jpeg.Encode(w, s.Image(), &jpeg.Options{Quality: jpegQuality})
	case FormatSVG:
		return s.writeSVG(w)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// PreviewPNG returns a PreviewSize thumbnail of the symbol.
func (s *Symbol) PreviewPNG() ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, PreviewSize, PreviewSize))
	src := s.Image()
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// writeSVG рисует те же фигуры, что и Image, векторными элементами
func (s *Symbol) writeSVG(w io.Writer) error {
	g := s.geometry()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		g.size, g.size, g.size, g.size)
	fmt.Fprintf(bw, `<rect width="%d" height="%d" fill="%s"/>`+"\n", g.size, g.size, hexColor(s.colors.background))

	logoArea, hasLogo := s.logoRect(g)
	cleared := logoArea
	if hasLogo {
		cleared = logoArea.inset(-float64(s.style.Logo.Margin))
	}

	dot := hexColor(s.colors.dot)
	radius := dotRadius(s.style.DotShape, g.module)
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			if !s.modules[row][col] || g.inFinder(row, col) {
				continue
			}
			cell := g.cell(row, col)
			if hasLogo && cleared.overlaps(cell) {
				continue
			}
			svgRect(bw, cell, radius, dot)
		}
	}

	for _, o := range g.finderOrigins() {
		outer := g.block(o[0], o[1], finderSize)
		// Кольцо рисуем обводкой по средней линии толщиной в модуль
		ring := outer.inset(g.module / 2)
		fmt.Fprintf(bw, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			num(ring.x0), num(ring.y0), num(ring.x1-ring.x0), num(ring.y1-ring.y0),
			num(cornerRadius(s.style.CornerSquareShape, ring)), hexColor(s.colors.cornerSquare), num(g.module))

		inner := g.block(o[0]+2, o[1]+2, 3)
		svgRect(bw, inner, cornerRadius(s.style.CornerDotShape, inner), hexColor(s.colors.cornerDot))
	}

	if hasLogo {
		var buf bytes.Buffer
		if err := png.Encode(&buf, s.logo); err != nil {
			return fmt.Errorf("failed to encode logo: %w", err)
		}
		fmt.Fprintf(bw, `<image x="%s" y="%s" width="%s" height="%s" href="data:image/png;base64,%s"/>`+"\n",
			num(logoArea.x0), num(logoArea.y0), num(logoArea.x1-logoArea.x0), num(logoArea.y1-logoArea.y0),
			base64.StdEncoding.EncodeToString(buf.Bytes()))
	}

	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

func svgRect(w io.Writer, r rectF, radius float64, fill string) {
	if radius > 0 {
		fmt.Fprintf(w, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
			num(r.x0), num(r.y0), num(r.x1-r.x0), num(r.y1-r.y0), num(radius), fill)
		return
	}
	fmt.Fprintf(w, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(r.x0), num(r.y0), num(r.x1-r.x0), num(r.y1-r.y0), fill)
}

// num печатает координату без лишних нулей
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
