package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/contact"
	"github.com/templui/agencysite/internal/logger"
	"github.com/templui/agencysite/internal/relay"
)

func ContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact form tools",
	}

	cmd.AddCommand(contactSendCmd())
	return cmd
}

func contactSendCmd() *cobra.Command {
	var values contact.Fields
	var provider string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a contact message through the configured relay",
		Example: `  do contact send --name "Alice Smith" --email alice@example.com \
    --message "Testing the contact relay from the CLI"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if provider != "" {
				cfg.RelayProvider = provider
			}
			logger.Init(cfg.IsDevelopment(), "")

			r, err := relay.New(cfg)
			if err != nil {
				return err
			}
			return sendContact(cmd.Context(), cmd.OutOrStdout(), r, cfg, values)
		},
	}

	cmd.Flags().StringVar(&values.Name, "name", "", "sender name")
	cmd.Flags().StringVar(&values.Email, "email", "", "sender email address")
	cmd.Flags().StringVar(&values.Message, "message", "", "message body")
	cmd.Flags().StringVar(&provider, "relay", "", "override RELAY_PROVIDER (emailjs, resend, log)")
	return cmd
}

// sendContact runs one submission through the same form the website uses
func sendContact(ctx context.Context, out io.Writer, r relay.Relay, cfg *config.Config, values contact.Fields) error {
	if ctx == nil {
		ctx = context.Background()
	}

	notifier := contact.NotifierFunc(func(_ context.Context, n contact.Notice) {
		fmt.Fprintf(out, "[%s] %s\n", n.Severity, n.Message)
	})

	form := contact.NewForm(r, notifier, contact.Options{
		ServiceID:   cfg.RelayServiceID,
		TemplateID:  cfg.RelayTemplateID,
		AccessToken: cfg.RelayAccessToken,
		Timeout:     cfg.RelayTimeout,
	})
	form.Restore(values)

	err := form.Submit(ctx)

	var validationErr *contact.ValidationError
	if errors.As(err, &validationErr) {
		for _, f := range contact.AllFields {
			if msg, ok := validationErr.Errors[f]; ok {
				fmt.Fprintf(out, "  --%s: %s\n", f, msg)
			}
		}
		return errors.New("invalid contact message")
	}
	return err
}
