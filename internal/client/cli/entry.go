package cli

import (
	"context"
	"fmt"
	"strings"
)

type loadView struct {
	ID       string
	Name     string
	Payload  string
	Output   string
	Problems []string
}

// runLoad восстанавливает запись и при необходимости пишет изображение
func (c *Cli) runLoad(ctx context.Context, args []string) error {
	fs := newFlagSet("load")
	out := fs.String("out", "", "write the QR image to this file")
	format := fs.String("format", "", "image format: png, jpeg or svg")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("missing entry ID. Usage: linkspark load <id> [--out file]")
	}

	loaded, err := c.history.Load(ctx, positional[0])
	if err != nil {
		return err
	}

	view := loadView{
		ID:       loaded.Entry.ID,
		Name:     loaded.Entry.DisplayName(),
		Payload:  loaded.Result.Payload,
		Problems: loaded.Warnings,
	}
	for _, d := range loaded.Result.Diagnostics {
		view.Problems = append(view.Problems, d.String())
	}

	if *out != "" {
		if loaded.Symbol == nil {
			return fmt.Errorf("entry %s no longer renders", loaded.Entry.ID)
		}
		f, err := outputFormat(*out, *format)
		if err != nil {
			return err
		}
		if err := c.writeSymbol(ctx, loaded.Symbol, *out, f); err != nil {
			return err
		}
		view.Output = *out
	}

	return c.print("load", loadTemplate, view)
}

func (c *Cli) runDuplicate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entry ID. Usage: linkspark duplicate <id>")
	}

	dup, err := c.history.Duplicate(ctx, args[0])
	if err != nil {
		return err
	}

	c.io.Printf("✓ Duplicated as %s (%s)\n", dup.ID, dup.DisplayName())
	return nil
}

// runLabel меняет метку; пустой текст сбрасывает ее
func (c *Cli) runLabel(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entry ID. Usage: linkspark label <id> <text>")
	}

	entry, err := c.history.Relabel(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	c.io.Printf("✓ %s is now %q\n", entry.ID, entry.DisplayName())
	return nil
}
