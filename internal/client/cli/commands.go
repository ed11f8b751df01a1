package cli

import (
	"context"
	"fmt"
)

// Run executes a single command
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "generate", "gen":
		return c.runGenerate(ctx, args)
	case "watch":
		return c.runWatch(ctx, args)
	case "history", "list":
		return c.runHistory(ctx, args)
	case "show":
		return c.runShow(ctx, args)
	case "load":
		return c.runLoad(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "duplicate":
		return c.runDuplicate(ctx, args)
	case "label":
		return c.runLabel(ctx, args)
	case "clear":
		return c.runClear(ctx, args)
	case "contact":
		return c.runContact(ctx, args)
	case "events":
		return c.runEvents(ctx, args)
	case "types":
		return c.runTypes(ctx, args)
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
