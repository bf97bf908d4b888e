package util

import (
	"strings"
	"time"
	"unicode"
)

// isoMillis matches the ISO-8601 form browsers emit (2025-10-24T09:30:00.000Z).
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func FormatISO(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// HumanizeField turns a camelCase field name into lower-case words:
// "leaderEmail" -> "leader email".
func HumanizeField(name string) string {
	b := strings.Builder{}
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
