package model

import "fmt"

// Severity classifies a recommendation for presentation purposes.
type Severity int

const (
	SeverityFavorable Severity = iota
	SeverityUnfavorable
	SeverityNeutral
)

func (s Severity) String() string {
	switch s {
	case SeverityFavorable:
		return "favorable"
	case SeverityUnfavorable:
		return "unfavorable"
	case SeverityNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Style maps a severity to the presentation style name the display layer
// understands. The mapping is fixed; styles are never looked up by name at
// runtime.
func (s Severity) Style() string {
	switch s {
	case SeverityFavorable:
		return "success"
	case SeverityUnfavorable:
		return "error"
	default:
		return "info"
	}
}

// MarshalText renders the severity name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "favorable":
		*s = SeverityFavorable
	case "unfavorable":
		*s = SeverityUnfavorable
	case "neutral":
		*s = SeverityNeutral
	default:
		return fmt.Errorf("unknown severity: %s", text)
	}
	return nil
}
