package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/linkspark/internal/client/history"
	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/payload"
	"github.com/iudanet/linkspark/internal/style"
)

type generateView struct {
	Type    models.QRType
	Payload string
	Output  string
	Format  string
	Entry   *models.HistoryEntry
	Length  int
}

func (c *Cli) runGenerate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate")
	out := fs.String("out", "", "write the QR image to this file")
	format := fs.String("format", "", "image format: png, jpeg or svg")
	save := fs.Bool("save", false, "save the configuration to history")
	label := fs.String("label", "", "history label")
	noPrompt := fs.Bool("no-prompt", false, "do not ask for missing fields")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("missing QR type. Usage: linkspark generate <type> [key=value...]")
	}

	t, err := models.ParseQRType(positional[0])
	if err != nil {
		return err
	}

	fields, styles, err := splitAssignments(positional[1:])
	if err != nil {
		return err
	}

	if !*noPrompt {
		if fields, err = c.promptMissing(t, fields); err != nil {
			return err
		}
	}
	if fields, err = resolveMedia(t, fields); err != nil {
		return err
	}

	input, err := models.NewInput(t, fields)
	if err != nil {
		return err
	}

	st, err := buildStyle(style.Default(), styles)
	if err != nil {
		return err
	}

	res := c.formatter.Format(input)
	c.printDiagnostics(res)
	if !res.Ready() {
		return fmt.Errorf("cannot generate %s QR code: %w", t, res.Err())
	}
	st.Data = res.Payload

	c.tracker.Track(ctx, models.EventGenerate, map[string]string{"type": string(t)})

	view := generateView{
		Type:    t,
		Payload: res.Payload,
		Length:  payload.Length(res.Payload),
	}

	if *out != "" {
		f, err := outputFormat(*out, *format)
		if err != nil {
			return err
		}
		if err := c.exportImage(ctx, res.Payload, st, *out, f); err != nil {
			return err
		}
		view.Output = *out
		view.Format = string(f)
	}

	if *save {
		entry, err := c.history.Save(ctx, models.Config{Input: input, Style: st}, *label)
		switch {
		case errors.Is(err, history.ErrDuplicate):
			c.io.Printf("Notice: %v\n", err)
		case err != nil:
			return err
		default:
			view.Entry = entry
		}
	}

	return c.print("generate", generateTemplate, view)
}
