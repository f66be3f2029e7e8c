package ingestion

// ParseTab turns one tab's exported CSV body into records. Fewer than two
// non-blank lines (header plus at least one data row) yields zero records;
// malformed rows are still kept, with unparsable cells collapsing to
// defaults.
func ParseTab(body string, headers *HeaderMap) []Record {
	lines := SplitLines(body)
	if len(lines) < 2 {
		return nil
	}
	keys := headers.Canonicalize(ParseLine(lines[0]))
	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		records = append(records, BuildRecord(keys, ParseLine(line)))
	}
	return records
}
