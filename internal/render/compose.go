package render

import (
	"context"
	"image"

	"github.com/iudanet/linkspark/internal/logo"
	"github.com/iudanet/linkspark/internal/models"
)

// Compose processes the logo of st, if any, and builds the symbol.
// Logo problems never fail composition: they are returned as warnings and
// the symbol is drawn with the original image or without a logo.
func Compose(ctx context.Context, data string, st models.StyleOptions) (*Symbol, []string, error) {
	var (
		logoImg  image.Image
		warnings []string
	)

	if st.Logo != nil {
		res := logo.Process(ctx, st.Logo.Source, st.Logo.Shape, st.Logo.Opacity)
		if res.Warning != "" {
			warnings = append(warnings, res.Warning)
		}
		if img, err := res.Image(); err != nil {
			warnings = append(warnings, "logo skipped: "+err.Error())
		} else {
			logoImg = img
		}
	}

	sym, err := New(data, st, logoImg)
	if err != nil {
		return nil, warnings, err
	}
	return sym, warnings, nil
}
