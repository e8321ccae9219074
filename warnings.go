package plotdig

import "strings"

// Warning is a non-fatal observation made while digitizing, such as an
// unlabeled curve being picked by heuristic or text that matched no
// labeling convention.
type Warning struct {
	// Op names the stage that produced the warning, such as "classify".
	Op string

	// Message is the human-readable description.
	Message string
}

func (w Warning) String() string {
	if w.Op == "" {
		return w.Message
	}
	return w.Op + ": " + w.Message
}

// FormatWarnings joins warnings into a single human-readable string,
// one per line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
