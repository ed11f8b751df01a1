package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/linkspark/internal/models"
)

// runContact отправляет сообщение обратной связи; недостающие поля запрашиваются
func (c *Cli) runContact(ctx context.Context, args []string) error {
	fs := newFlagSet("contact")
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "reply address")
	message := fs.String("message", "", "message text")
	list := fs.Bool("list", false, "list submitted messages")

	if _, err := parseInterleaved(fs, args); err != nil {
		return err
	}

	if *list {
		msgs, err := c.contact.List(ctx)
		if err != nil {
			return err
		}
		return c.print("contact list", contactListTemplate, msgs)
	}

	msg := &models.ContactMessage{Name: *name, Email: *email, Message: *message}
	for _, f := range []struct {
		dst    *string
		prompt string
	}{
		{&msg.Name, "Name: "},
		{&msg.Email, "Email: "},
		{&msg.Message, "Message: "},
	} {
		if *f.dst != "" {
			continue
		}
		v, err := c.io.ReadInput(f.prompt)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		*f.dst = v
	}

	c.io.Println("Sending...")
	id, err := c.contact.Submit(ctx, msg)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Message #%d received. Thank you!\n", id)
	return nil
}
