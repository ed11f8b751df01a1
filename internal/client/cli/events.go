package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/linkspark/internal/models"
)

// defaultEventsLimit количество событий по умолчанию
const defaultEventsLimit = 20

func (c *Cli) runEvents(ctx context.Context, args []string) error {
	fs := newFlagSet("events")
	limit := fs.Int("limit", defaultEventsLimit, "number of events to show")
	if _, err := parseInterleaved(fs, args); err != nil {
		return err
	}
	if *limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", *limit)
	}

	events, err := c.tracker.Recent(ctx, *limit)
	if err != nil {
		return err
	}

	return c.print("events", eventsTemplate, events)
}

type typeView struct {
	Type   models.QRType
	Fields []models.FieldSpec
}

// runTypes выводит поддерживаемые типы и их поля
func (c *Cli) runTypes(_ context.Context, args []string) error {
	types := models.AllTypes()
	if len(args) > 0 {
		t, err := models.ParseQRType(args[0])
		if err != nil {
			return err
		}
		types = []models.QRType{t}
	}

	views := make([]typeView, 0, len(types))
	for _, t := range types {
		views = append(views, typeView{Type: t, Fields: models.FieldsFor(t)})
	}

	return c.print("types", typesTemplate, views)
}
