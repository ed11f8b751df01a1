// Package logo prepares an uploaded image for embedding in the centre of a
// QR code.
package logo

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"math"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/iudanet/linkspark/internal/models"
)

// CanvasSize сторона квадратного холста, в который вписывается логотип
const CanvasSize = 300

// Result is the outcome of processing a logo.
// When processing fails Data holds the original bytes and Warning explains
// why; the caller can still embed the unprocessed image.
type Result struct {
	Data      []byte
	MediaType string
	Warning   string
	Processed bool
}

// DataURL returns the image as an embeddable data URL.
func (r Result) DataURL() string {
	return "data:" + r.MediaType + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}

// Image decodes the result for compositing.
func (r Result) Image() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(r.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}
	return img, nil
}

// Process draws source into a CanvasSize square, preserving aspect ratio,
// optionally clips it to a circle and applies opacity. The output is PNG.
func Process(ctx context.Context, source []byte, shape models.LogoShape, opacity float64) Result {
	if len(source) == 0 {
		return Result{Warning: "logo image is empty"}
	}
	if err := ctx.Err(); err != nil {
		return fallback(source, err)
	}

	src, _, err := image.Decode(bytes.NewReader(source))
	if err != nil {
		return fallback(source, fmt.Errorf("failed to decode logo: %w", err))
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return fallback(source, fmt.Errorf("logo image has no pixels"))
	}

	canvas := image.Rect(0, 0, CanvasSize, CanvasSize)

	// Вписываем изображение, оставляя поля по меньшей стороне
	fitted := image.NewRGBA(canvas)
	draw.CatmullRom.Scale(fitted, fitRect(bounds.Dx(), bounds.Dy()), src, bounds, draw.Src, nil)

	if err := ctx.Err(); err != nil {
		return fallback(source, err)
	}

	out := image.NewRGBA(canvas)
	draw.DrawMask(out, canvas, fitted, image.Point{}, mask(shape, opacity), image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return fallback(source, fmt.Errorf("failed to encode logo: %w", err))
	}

	return Result{
		Data:      buf.Bytes(),
		MediaType: "image/png",
		Processed: true,
	}
}

// fitRect возвращает прямоугольник внутри холста с сохранением пропорций
func fitRect(w, h int) image.Rectangle {
	scale := math.Min(float64(CanvasSize)/float64(w), float64(CanvasSize)/float64(h))
	fw := max(1, int(math.Round(float64(w)*scale)))
	fh := max(1, int(math.Round(float64(h)*scale)))
	off := image.Pt((CanvasSize-fw)/2, (CanvasSize-fh)/2)
	return image.Rectangle{Min: off, Max: off.Add(image.Pt(fw, fh))}
}

// mask строит альфа-маску: прозрачность задается opacity,
// для круга пиксели вне окружности полностью прозрачны
func mask(shape models.LogoShape, opacity float64) *image.Alpha {
	a := uint8(math.Round(min(max(opacity, 0), 1) * 255))
	m := image.NewAlpha(image.Rect(0, 0, CanvasSize, CanvasSize))

	c := float64(CanvasSize) / 2
	for y := 0; y < CanvasSize; y++ {
		for x := 0; x < CanvasSize; x++ {
			if shape == models.LogoCircle {
				dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
				if dx*dx+dy*dy > c*c {
					continue
				}
			}
			m.Pix[y*m.Stride+x] = a
		}
	}
	return m
}

func fallback(source []byte, err error) Result {
	return Result{
		Data:      source,
		MediaType: http.DetectContentType(source),
		Warning:   fmt.Sprintf("logo processing failed, using original image: %v", err),
	}
}
