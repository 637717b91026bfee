package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/money"
)

// Date is a Gregorian calendar date without a time component. The wire
// encoding is CCYYMMDD with the UNTDID 2379 format qualifier 102.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// NewDate creates a date, rejecting values that do not denote a real
// calendar day.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.valid() {
		return Date{}, money.NewValueError(d.ISO(), "not a valid calendar date")
	}
	return d, nil
}

// MustDate is NewDate that panics on error, for statically known dates.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) valid() bool {
	if d.Year < 1 || d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// IsZero reports whether d is the zero date (field absent).
func (d Date) IsZero() bool {
	return d == Date{}
}

// Format102 renders the CCYYMMDD wire form.
func (d Date) Format102() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// ISO renders YYYY-MM-DD, used for display and JSON.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ParseDate102 parses the CCYYMMDD wire form.
func ParseDate102(s string) (Date, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return Date{}, money.NewValueError(s, "not a CCYYMMDD date")
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// MarshalText renders the ISO form for JSON.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.ISO()), nil
}

// UnmarshalText accepts the ISO form.
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse("2006-01-02", string(text))
	if err != nil {
		return money.NewValueError(string(text), "not a YYYY-MM-DD date")
	}
	*d = Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	return nil
}

// Period is an inclusive date range.
type Period struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewPeriod creates a period, rejecting ranges that end before they start.
func NewPeriod(start, end Date) (Period, error) {
	if end.Before(start) {
		return Period{}, money.NewValueError(
			start.ISO()+".."+end.ISO(), "period start after end")
	}
	return Period{Start: start, End: end}, nil
}

// Quantity is a decimal amount with a Rec 20/21 unit of measure.
type Quantity struct {
	Value decimal.Decimal `json:"value"`
	Unit  codes.UnitCode  `json:"unit"`
}

// NewQuantity creates a quantity, rejecting unknown unit codes and values
// with more than 4 fraction digits. Negative values are allowed here; the
// validator rejects them for documents that are not credits or corrections.
func NewQuantity(value string, unit codes.UnitCode) (Quantity, error) {
	if !codes.ValidUnit(unit) {
		return Quantity{}, money.NewValueError(string(unit), "not a Rec 20/21 unit code")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Quantity{}, money.NewValueError(value, "not a decimal quantity")
	}
	if money.FractionDigits(d) > 4 {
		return Quantity{}, money.NewValueError(value, "more than 4 fraction digits")
	}
	return Quantity{Value: d, Unit: unit}, nil
}

// MustQuantity is NewQuantity that panics on error.
func MustQuantity(value string, unit codes.UnitCode) Quantity {
	q, err := NewQuantity(value, unit)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Quantity) String() string {
	return q.Value.String() + " " + string(q.Unit)
}

// SchemeID is an identifier qualified by an ISO/IEC 6523 scheme.
type SchemeID struct {
	Value  string `json:"value"`
	Scheme string `json:"scheme,omitempty"`
}

// Note is a free-text note with an optional UNTDID 4451 subject qualifier.
type Note struct {
	Content     string                `json:"content"`
	SubjectCode codes.TextSubjectCode `json:"subject_code,omitempty"`
}

// NewNote creates a note, rejecting empty content and unknown subject codes.
func NewNote(content string, subject codes.TextSubjectCode) (Note, error) {
	if strings.TrimSpace(content) == "" {
		return Note{}, money.NewValueError("", "note content is empty")
	}
	if subject != "" && !codes.ValidTextSubject(subject) {
		return Note{}, money.NewValueError(string(subject), "not a UNTDID 4451 subject code")
	}
	return Note{Content: content, SubjectCode: subject}, nil
}
