package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// Known category palette. Anything outside it renders as CategoryOther.
const (
	CategoryFood      Category = "🍔 Comida"
	CategoryRent      Category = "🏠 Renta"
	CategoryTransport Category = "🚗 Transporte"
	CategoryWork      Category = "👔 Trabajo"
	CategoryOther     Category = "💡 Otros"
)

// DefaultCategoryColor is used for every category outside the palette.
const DefaultCategoryColor = "#94a3b8"

type (
	// Kind tells whether a transaction adds to or subtracts from the balance.
	Kind string

	// Category is an enum-like label. Unknown values are valid but fold
	// into CategoryOther for display and aggregation.
	Category string

	// Date is a plain calendar date. Transactions carry structured dates
	// from creation onward; formatting to "DD/MM/YYYY" happens only at
	// the storage and report boundaries.
	Date struct {
		Year  int
		Month int // 1-12
		Day   int // 1-31
	}

	// Transaction is a single ledger movement. Amount is always stored
	// non-negative; the sign is derived from Kind at aggregation time.
	// A transaction with IsRecurring set doubles as the template from
	// which future monthly occurrences are materialized.
	Transaction struct {
		ID            string   `json:"id"`
		Description   string   `json:"description"`
		Category      Category `json:"category"`
		Amount        Money    `json:"amount"`
		Kind          Kind     `json:"type"`
		Date          Date     `json:"date"`
		IsRecurring   bool     `json:"isRecurrent,omitempty"`
		RecurringDay  int      `json:"recurringDay,omitempty"`
		RecurringTime string   `json:"recurringTime,omitempty"`
	}

	// Goal is a savings target. Current is kept in the persisted shape for
	// compatibility with older backups; displayed progress is always
	// recomputed from the wallet balance and never read from it.
	Goal struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Target  Money  `json:"target"`
		Current Money  `json:"current"`
	}
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidKind       = errors.New("invalid transaction kind")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyDescription  = errors.New("empty description")
	ErrEmptyGoalName     = errors.New("empty goal name")
	ErrInvalidGoalTarget = errors.New("goal target must be positive")
	ErrInvalidDayOfMonth = errors.New("recurring day must be between 1 and 31")
)

var categoryColors = map[Category]string{
	CategoryFood:      "#fb7185",
	CategoryRent:      "#60a5fa",
	CategoryTransport: "#34d399",
	CategoryWork:      "#818cf8",
	CategoryOther:     "#94a3b8",
}

// Palette returns the known categories in display order.
func Palette() []Category {
	return []Category{CategoryFood, CategoryRent, CategoryTransport, CategoryWork, CategoryOther}
}

// Normalize maps unknown or empty categories to CategoryOther.
func (c Category) Normalize() Category {
	if _, ok := categoryColors[c]; ok {
		return c
	}
	return CategoryOther
}

// Color returns the palette color for the category, or the default color
// for anything outside the palette.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return DefaultCategoryColor
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, string(k))
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf extracts the calendar date from a point in time.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDate parses "DD/MM/YYYY"; non-padded day and month are accepted.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Day: nums[0], Month: nums[1], Year: nums[2]}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

func (d Date) Validate() error {
	if d.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, d.Year)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, d.Month)
	}
	if d.Day < 1 || d.Day > 31 {
		return fmt.Errorf("%w: day %d", ErrInvalidDate, d.Day)
	}
	return nil
}

// String formats the date as "DD/MM/YYYY".
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MonthBefore reports whether d's (year, month) is strictly earlier than
// other's. This is the chronological comparison the recurrence engine uses
// to decide whether a template belongs to a past period.
func (d Date) MonthBefore(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	return d.Month < other.Month
}

// SameMonth reports whether both dates fall in the same (year, month).
func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// MarshalJSON stores the date in the original "DD/MM/YYYY" wire format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, data)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalJSON accepts ids as JSON strings or as the bare numbers older
// ledgers and backups carry, normalizing both to strings.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = idFromJSON(aux.ID)
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.IsRecurring && (t.RecurringDay < 1 || t.RecurringDay > 31) {
		return ErrInvalidDayOfMonth
	}
	return nil
}

// SignedCents returns the amount with the sign derived from the kind.
func (t Transaction) SignedCents() int64 {
	if t.Kind == Income {
		return t.Amount.Cents
	}
	return -t.Amount.Cents
}

// UnmarshalJSON gives goal ids the same number-or-string tolerance
// transaction ids have.
func (g *Goal) UnmarshalJSON(data []byte) error {
	type plain Goal
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.ID = idFromJSON(aux.ID)
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyGoalName
	}
	if g.Target.Cents <= 0 {
		return ErrInvalidGoalTarget
	}
	return nil
}

// idFromJSON keeps string ids as-is and turns numeric ids into their
// literal text, so "id": 3 and "id": "3" load the same way.
func idFromJSON(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}
