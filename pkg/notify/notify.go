// Package notify renders and delivers messages to users.
package notify

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind selects the template of a message.
type Kind string

const (
	KindBudgetAlert   Kind = "budget-alert"
	KindMonthlyReport Kind = "monthly-report"
)

var (
	ErrUnknownKind      = errors.New("unknown message kind")
	ErrRecipientMissing = errors.New("message has no recipient")
)

//go:embed templates/*.html
var templateFS embed.FS

var printer = message.NewPrinter(language.English)

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"percent": func(d decimal.Decimal) string {
		return printer.Sprintf("%.1f", d.InexactFloat64())
	},
	"money": func(d decimal.Decimal) string {
		return printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
	},
}).ParseFS(templateFS, "templates/*.html"))

// Data is the data available to all templates.
type Data struct {
	UserName      string
	AccountName   string
	PercentUsed   decimal.Decimal
	BudgetAmount  decimal.Decimal
	TotalExpenses decimal.Decimal
}

// Remaining is the part of the budget that has not been spent yet.
func (d Data) Remaining() decimal.Decimal {
	return d.BudgetAmount.Sub(d.TotalExpenses)
}

// Message is a message to a single recipient.
type Message struct {
	To      string
	Subject string
	Kind    Kind
	Data    Data
}

// Notifier delivers messages.
type Notifier interface {
	Send(ctx context.Context, m Message) error
}

// BudgetAlert builds the message sent when a budget threshold is reached.
func BudgetAlert(to string, data Data) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Budget Alert for %s", data.AccountName),
		Kind:    KindBudgetAlert,
		Data:    data,
	}
}

// Render renders the HTML body of the message.
func Render(m Message) (string, error) {
	t := templates.Lookup(fmt.Sprintf("%s.html", m.Kind))
	if t == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, m.Data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", m.Kind, err)
	}

	return buf.String(), nil
}

// LogNotifier renders messages and writes them to the log instead of
// delivering them.
type LogNotifier struct {
	From string
}

// Send renders the message and logs it. The rendered body is only logged
// at debug level.
func (n LogNotifier) Send(_ context.Context, m Message) error {
	if strings.TrimSpace(m.To) == "" {
		return ErrRecipientMissing
	}

	body, err := Render(m)
	if err != nil {
		return err
	}

	log.Info().
		Str("from", n.From).
		Str("to", m.To).
		Str("subject", m.Subject).
		Str("kind", string(m.Kind)).
		Int("size", len(body)).
		Msg("notification")

	log.Debug().Str("to", m.To).Msg(body)
	return nil
}
