package ingestion

import "strings"

// ParseLine splits one line of comma-delimited text into raw field values.
// A double quote toggles quoted mode; a doubled quote inside a quoted field
// emits one literal quote. An unterminated quote is treated as closed at end
// of line. Each field is trimmed and loses one layer of surrounding quotes.
// The final field is always emitted, so a line with no commas yields one
// field and a trailing comma yields a trailing empty field.
func ParseLine(line string) []string {
	var (
		fields   []string
		cur      strings.Builder
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cleanField(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	fields = append(fields, cleanField(cur.String()))
	return fields
}

func cleanField(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

// SplitLines breaks a tab body into its non-blank lines.
func SplitLines(body string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
