// Package receipt extracts transaction data from photos of receipts.
package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerly/backend/pkg/models"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var (
	ErrNotAReceipt      = errors.New("the image does not show a receipt")
	ErrInvalidResponse  = errors.New("the receipt could not be read")
	ErrUnsupportedImage = errors.New("only JPEG, PNG, WEBP and HEIC images are supported")
	ErrNegativeAmount   = fmt.Errorf("%w: the amount must not be negative", models.ErrValidation)
)

// DefaultCategory is used when the suggested category is unknown.
const DefaultCategory = "other-expense"

// Categories are the expense categories a scanned receipt can be assigned to.
var Categories = []string{
	"housing",
	"transportation",
	"groceries",
	"utilities",
	"entertainment",
	"food",
	"shopping",
	"healthcare",
	"education",
	"personal",
	"travel",
	"insurance",
	"gifts",
	"bills",
	DefaultCategory,
}

// MIMETypes are the image types that can be scanned.
var MIMETypes = []string{"image/jpeg", "image/png", "image/webp", "image/heic"}

// Receipt is the data read from a receipt. It is a suggestion for a new
// expense, nothing is stored.
type Receipt struct {
	Amount       decimal.Decimal `json:"amount" example:"14.03"`
	Date         time.Time       `json:"date" example:"2024-01-05T00:00:00Z"`
	Description  string          `json:"description" example:"Coffee and bagel"`
	MerchantName string          `json:"merchantName" example:"Corner Coffee"`
	Category     string          `json:"category" example:"food"`
}

// Scanner reads receipts from images.
type Scanner interface {
	Scan(ctx context.Context, image []byte, mimeType string) (Receipt, error)
}

type response struct {
	Amount       *decimal.Decimal `json:"amount"`
	Date         string           `json:"date"`
	Description  string           `json:"description"`
	MerchantName string           `json:"merchantName"`
	Category     string           `json:"category"`
}

// Parse parses the JSON answer of a model. now is used when the receipt
// has no readable date.
func Parse(raw string, now time.Time) (Receipt, error) {
	var r response
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &r); err != nil {
		return Receipt{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if r.Amount == nil {
		return Receipt{}, ErrNotAReceipt
	}

	receipt := Receipt{
		Amount:       *r.Amount,
		Date:         parseDate(r.Date, now),
		Description:  strings.TrimSpace(r.Description),
		MerchantName: strings.TrimSpace(r.MerchantName),
		Category:     strings.ToLower(strings.TrimSpace(r.Category)),
	}

	if !slices.Contains(Categories, receipt.Category) {
		receipt.Category = DefaultCategory
	}

	return receipt, receipt.Validate()
}

// Validate applies the same rules as for manually entered transactions.
func (r Receipt) Validate() error {
	if r.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if r.Category == "" {
		return models.ErrCategoryRequired
	}

	return nil
}

// ApplyRules sets the category of the first rule whose pattern matches the
// merchant name. rules must be sorted by priority.
func ApplyRules(r Receipt, rules []models.CategoryRule) Receipt {
	name := strings.ToLower(r.MerchantName)
	if name == "" {
		return r
	}

	for _, rule := range rules {
		if glob.Glob(strings.ToLower(rule.Match), name) {
			r.Category = rule.Category
			return r
		}
	}

	return r
}

func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}

	return now.UTC()
}

// cleanModelJSON removes Markdown code fences and surrounding text that
// models like to add despite being asked not to.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	return s
}
