package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/linkspark/internal/client/history"
	"github.com/iudanet/linkspark/internal/client/preview"
	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/payload"
	"github.com/iudanet/linkspark/internal/render"
	"github.com/iudanet/linkspark/internal/style"
)

// Команды интерактивного режима
const (
	watchQuit = ":quit"
	watchType = ":type"
	watchSave = ":save"
	watchHelp = ":help"
)

// runWatch читает правки построчно и перегенерирует payload с задержкой
func (c *Cli) runWatch(ctx context.Context, args []string) error {
	fs := newFlagSet("watch")
	out := fs.String("out", "", "rewrite the QR image to this file on every change")
	format := fs.String("format", "", "image format: png, jpeg or svg")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("missing QR type. Usage: linkspark watch <type>")
	}

	t, err := models.ParseQRType(positional[0])
	if err != nil {
		return err
	}

	var imgFormat render.Format
	if *out != "" {
		if imgFormat, err = outputFormat(*out, *format); err != nil {
			return err
		}
	}

	onResult := func(cfg models.Config, res payload.Result) {
		c.printDiagnostics(res)
		if !res.Ready() {
			return
		}
		c.io.Printf("[%s] %s\n", cfg.Type(), res.Payload)
		if *out == "" {
			return
		}
		if err := c.exportImage(ctx, res.Payload, cfg.Style, *out, imgFormat); err != nil {
			c.io.Printf("Error: %v\n", err)
		}
	}

	session := preview.NewSession(t, style.Default(), c.formatter, c.debounce, onResult)
	defer session.Close()

	c.io.Printf("Editing %s QR code. Enter key=value lines, %s for commands.\n", t, watchHelp)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.io.ReadInput("> ")
		if errors.Is(err, io.EOF) {
			session.Flush()
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		quit, err := c.watchLine(ctx, session, line)
		if err != nil {
			c.io.Printf("Error: %v\n", err)
		}
		if quit {
			session.Flush()
			return nil
		}
	}
}

// watchLine применяет одну строку ввода к сессии
func (c *Cli) watchLine(ctx context.Context, session *preview.Session, line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		fields, styles, err := splitAssignments([]string{line})
		if err != nil {
			return false, err
		}
		if len(fields) > 0 {
			if fields, err = resolveMedia(session.Type(), fields); err != nil {
				return false, err
			}
			session.UpdateFields(fields)
		}
		if len(styles) > 0 {
			changes, err := styleChanges(styles)
			if err != nil {
				return false, err
			}
			return false, session.UpdateStyle(changes...)
		}
		return false, nil
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case watchQuit:
		return true, nil
	case watchHelp:
		return false, c.print("watch help", watchHelpTemplate, nil)
	case watchType:
		t, err := models.ParseQRType(arg)
		if err != nil {
			return false, err
		}
		session.SetType(t)
		return false, nil
	case watchSave:
		session.Flush()
		cfg, err := session.Config()
		if err != nil {
			return false, err
		}
		entry, err := c.history.Save(ctx, cfg, arg)
		if errors.Is(err, history.ErrDuplicate) {
			c.io.Printf("Notice: %v\n", err)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		c.io.Printf("Saved %s as %q\n", entry.ID, entry.DisplayName())
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s, type %s", cmd, watchHelp)
	}
}
