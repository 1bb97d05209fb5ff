package events

import (
	"encoding/json"
	"fmt"
)

// Severity is the perceived severity of the status the event is describing
// with respect to the affected system.
type Severity int

const (
	// SeverityCritical is the highest severity.
	SeverityCritical Severity = iota
	SeverityError
	SeverityWarning
	// SeverityInfo is the lowest severity.
	SeverityInfo
)

var severityNames = map[Severity]string{
	SeverityCritical: "critical",
	SeverityError:    "error",
	SeverityWarning:  "warning",
	SeverityInfo:     "info",
}

// ParseSeverity converts a lowercase wire name such as "warning" back into a
// Severity.
func ParseSeverity(name string) (Severity, error) {
	for sev, n := range severityNames {
		if n == name {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("unrecognized severity %q", name)
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalJSON writes the lowercase wire form, e.g. "critical".
func (s Severity) MarshalJSON() ([]byte, error) {
	name, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return json.Marshal(name)
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}
