package intake

import "strings"

var refusalPhrases = map[string]bool{
	"no": true, "none": true, "nothing": true, "nope": true, "nah": true,
	"skip": true, "pass": true, "n/a": true, "na": true, "not really": true,
}

// IsRefusal reports whether the message declines to answer. Used by the flow
// to record an explicit skip for optional fields.
func IsRefusal(message string) bool {
	m := strings.ToLower(strings.TrimSpace(message))
	m = strings.Trim(m, ".,!")
	if refusalPhrases[m] {
		return true
	}
	return strings.Contains(m, "don't have") || strings.Contains(m, "dont have")
}
