package schema

import "strings"

// Recognised unit suffixes, matched after underscores become spaces.
var unitSuffixes = []struct {
	suffix string
	unit   string
}{
	{suffix: " mm", unit: " mm"},
	{suffix: " ul", unit: " μL"},
}

// NameUnit converts a column name into a display name and unit annotation:
// "dose_mm" yields ("dose", " mm"), "volume_ul" yields ("volume", " μL").
func NameUnit(name string) (string, string) {
	display := strings.ReplaceAll(name, "_", " ")
	for _, candidate := range unitSuffixes {
		if strings.HasSuffix(display, candidate.suffix) {
			return strings.TrimSuffix(display, candidate.suffix), candidate.unit
		}
	}
	return display, ""
}
