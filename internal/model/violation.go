package model

import "fmt"

// Severity classifies a validator finding. Errors block generation and
// acceptance; warnings are reported alongside successful results.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// MarshalText renders the severity name for JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the severity name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Violation is one validator finding, tagged with the EN 16931 business
// term (BT-nnn) or business group (BG-nnn) it concerns.
type Violation struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Errors filters the Error-severity subset of violations.
func Errors(violations []Violation) []Violation {
	var errs []Violation
	for _, v := range violations {
		if v.Severity == SeverityError {
			errs = append(errs, v)
		}
	}
	return errs
}

// Warnings filters the Warning-severity subset of violations.
func Warnings(violations []Violation) []Violation {
	var warns []Violation
	for _, v := range violations {
		if v.Severity == SeverityWarning {
			warns = append(warns, v)
		}
	}
	return warns
}
