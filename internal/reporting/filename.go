package reporting

import (
	"strings"
)

// DefaultFileName is used when a report has no usable report number.
const DefaultFileName = "irregular-report"

// FileName derives the download file name from a report number. Characters
// outside [A-Za-z0-9._-] become underscores.
func FileName(reportNumber, format string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(reportNumber))

	name = strings.Trim(name, "._")
	if name == "" {
		name = DefaultFileName
	}
	return name + "." + format
}
