package cli

import (
	"context"
	"fmt"
	"strings"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entry ID. Usage: linkspark delete <id>")
	}

	if err := c.history.Delete(ctx, args[0]); err != nil {
		return err
	}

	c.io.Printf("✓ Deleted %s\n", args[0])
	return nil
}

// runClear удаляет всю историю после подтверждения
func (c *Cli) runClear(ctx context.Context, args []string) error {
	fs := newFlagSet("clear")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if _, err := parseInterleaved(fs, args); err != nil {
		return err
	}

	if !*yes {
		confirm, err := c.io.ReadInput("Delete all saved QR codes? (yes/no): ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		confirm = strings.ToLower(strings.TrimSpace(confirm))
		if confirm != "yes" && confirm != "y" {
			c.io.Println("Clear cancelled.")
			return nil
		}
	}

	n, err := c.history.Clear(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Removed %d entries\n", n)
	return nil
}
