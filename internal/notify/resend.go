package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/resend/resend-go/v2"

	"tavolo/internal/submission"
)

// Mailer sends the "new submission" email through Resend. A nil
// Mailer pointer is a valid no-op notifier, which keeps local dev
// working without an API key.
type Mailer struct {
	client *resend.Client
	from   string
	to     []string
}

// NewMailerFromEnv returns nil (not an error) when RESEND_API_KEY is
// unset, so callers can wire it unconditionally.
func NewMailerFromEnv() *Mailer {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil
	}

	from := os.Getenv("NOTIFY_FROM")
	if from == "" {
		from = "Tavolo <onboarding@resend.dev>"
	}

	to := strings.Split(os.Getenv("NOTIFY_TO"), ",")
	recipients := make([]string, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	return &Mailer{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     recipients,
	}
}

// SubmissionReceived emails a short HTML summary with the full export
// document attached as JSON.
func (m *Mailer) SubmissionReceived(ctx context.Context, rec *submission.Record, doc *submission.ExportDocument) error {
	if m == nil {
		return nil
	}

	attachment, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode attachment: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      m.to,
		Subject: fmt.Sprintf("New restaurant submission: %s", rec.RestaurantName),
		Html:    buildSummaryHTML(rec),
		Attachments: []*resend.Attachment{
			{
				Filename:    doc.Filename(),
				Content:     attachment,
				ContentType: "application/json",
			},
		},
	}

	_, err = m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

func buildSummaryHTML(rec *submission.Record) string {
	var b strings.Builder

	b.WriteString("<h2>New Restaurant Submission</h2>")
	fmt.Fprintf(&b, "<p><strong>%s</strong><br/>%s</p>",
		html.EscapeString(rec.RestaurantName),
		html.EscapeString(rec.Address),
	)

	b.WriteString("<table cellpadding=\"4\">")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			label, html.EscapeString(value))
	}
	row("Email", rec.Email)
	row("Phone", rec.Phone)
	row("Website", rec.Website)
	row("Online ordering", rec.OnlineOrderingURL)
	row("Founded", rec.FoundedYear)
	row("Dishes", fmt.Sprintf("%d", len(rec.Dishes)))
	row("Deals", fmt.Sprintf("%d", len(rec.Deals)))
	row("Photos", fmt.Sprintf("%d", len(rec.Photos)))
	row("FAQs", fmt.Sprintf("%d", len(rec.Faqs)))
	b.WriteString("</table>")

	fmt.Fprintf(&b, "<p>Submission ID: <code>%s</code></p>", html.EscapeString(rec.ID))
	b.WriteString("<p>The full submission is attached as JSON.</p>")

	return b.String()
}
