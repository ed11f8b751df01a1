package cli

import (
	"log/slog"
	"time"

	"github.com/iudanet/linkspark/internal/client/analytics"
	"github.com/iudanet/linkspark/internal/client/contact"
	"github.com/iudanet/linkspark/internal/client/history"
	"github.com/iudanet/linkspark/internal/client/iocli"
	"github.com/iudanet/linkspark/internal/payload"
)

type Cli struct {
	io        iocli.IO
	history   history.Service
	contact   contact.Service
	tracker   analytics.Tracker
	formatter *payload.Formatter
	logger    *slog.Logger
	debounce  time.Duration
}

func New(
	io iocli.IO,
	historyService history.Service,
	contactService contact.Service,
	tracker analytics.Tracker,
	formatter *payload.Formatter,
	logger *slog.Logger,
	debounce time.Duration,
) *Cli {
	if tracker == nil {
		tracker = analytics.Nop()
	}
	if formatter == nil {
		formatter = payload.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cli{
		io:        io,
		history:   historyService,
		contact:   contactService,
		tracker:   tracker,
		formatter: formatter,
		logger:    logger,
		debounce:  debounce,
	}
}

// PrintUsage prints the command reference
func (c *Cli) PrintUsage() {
	_ = c.print("usage", usageTemplate, nil)
}
