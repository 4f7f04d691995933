package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// parseAmount reads a money or weight field. Empty means zero; thousands
// separators are accepted.
func parseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", field, s)
	}
	return d, nil
}

func parseCount(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: %q is not a whole number", field, s)
	}
	return n, nil
}

// splitList turns "LR-1, LR-2 LR-3" into its entries.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	if len(parts) == 0 {
		return nil
	}
	return parts
}

func joinList(xs []string) string { return strings.Join(xs, ", ") }

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// amountOrEmpty renders zero as an empty input so the placeholder shows.
func amountOrEmpty(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// --- Validators ---

func validateAmount(s string) error {
	_, err := parseAmount("value", s)
	if err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func validateCount(s string) error {
	if _, err := parseCount("value", s); err != nil {
		return errors.New("must be a whole number")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validatePercent(s string) error {
	d, err := parseAmount("value", s)
	if err != nil {
		return errors.New("must be a number")
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("must be between 0 and 100")
	}
	return nil
}
