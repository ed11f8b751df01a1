package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/linkspark/internal/models"
)

type historyView struct {
	Query   string
	Entries []models.HistoryEntry
}

// runHistory выводит сохраненные конфигурации, при наличии запроса фильтрует их
func (c *Cli) runHistory(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	entries, err := c.history.Search(ctx, query)
	if err != nil {
		return err
	}

	return c.print("history", historyTemplate, historyView{Query: query, Entries: entries})
}

// runShow выводит одну запись истории
func (c *Cli) runShow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing entry ID. Usage: linkspark show <id>")
	}

	entry, err := c.history.Get(ctx, args[0])
	if err != nil {
		return err
	}

	return c.print("show", showTemplate, entry)
}
