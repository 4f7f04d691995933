package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Field is one named cell of a record.
type Field struct {
	Key   string
	Value any
}

// Record is a flat row whose field order becomes the column order.
type Record []Field

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value of the named field.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Values returns the cell values in the order of keys. Missing fields are
// left empty.
func (r Record) Values(keys []string) []any {
	vals := make([]any, len(keys))
	for i, k := range keys {
		v, _ := r.Get(k)
		vals[i] = cellValue(v)
	}
	return vals
}

// cellValue turns decimals into floats so the spreadsheet stores numbers
// rather than text.
func cellValue(v any) any {
	switch x := v.(type) {
	case decimal.Decimal:
		return x.InexactFloat64()
	case []string:
		return strings.Join(x, ", ")
	}
	return v
}

// Sum adds the decimal values of key across records. Non-decimal values
// are ignored.
func Sum(records []Record, key string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		v, ok := r.Get(key)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case decimal.Decimal:
			total = total.Add(x)
		case int:
			total = total.Add(decimal.NewFromInt(int64(x)))
		}
	}
	return total
}
