// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the provider and renders bodies from HTML
// templates embedded in the binary.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/starwars-api/internal/config"
)

// Client wraps the Resend client and a logger.
type Client struct {
	// client is nil when no API key is configured; sends are then skipped.
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client from the integration settings.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Enabled reports whether the client can actually deliver mail.
func (c *Client) Enabled() bool {
	return c.client != nil
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templates, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Debug().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("email provider not configured, skipping send")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendFavoriteAddedEmail tells a user that a planet or character joined
// their favorites.
func (c *Client) SendFavoriteAddedEmail(to, username, kind, targetName string) error {
	data := map[string]string{
		"Username":   username,
		"Kind":       kind,
		"TargetName": targetName,
	}

	return c.SendEmail(to, "New favorite "+kind+": "+targetName, TemplateFavoriteAdded, data)
}
