// Package services implements the catalog normalization pipeline and the
// selection/totals engine for the van conversion cost estimator.
package services

// ParseDelimited parses comma-delimited text into a grid of rows of cells.
//
// Quoting follows the usual delimited-text rules: a quoted cell may contain
// commas, newlines, and doubled quotes (a literal quote). Both \n and \r\n
// terminate a row. A trailing partial row without a final newline is still
// emitted. Parsing is best-effort and never fails: an unterminated quote
// simply absorbs the remainder of the text into one cell. Empty input
// yields no rows.
func ParseDelimited(text string) [][]string {
	var rows [][]string
	var row []string
	var cell []byte
	inQuotes := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if ch == '"' {
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell = append(cell, '"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if !inQuotes && ch == ',' {
			row = append(row, string(cell))
			cell = cell[:0]
			continue
		}

		if !inQuotes && (ch == '\n' || ch == '\r') {
			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			row = append(row, string(cell))
			rows = append(rows, row)
			row = nil
			cell = cell[:0]
			continue
		}

		cell = append(cell, ch)
	}

	if len(cell) > 0 || len(row) > 0 {
		row = append(row, string(cell))
		rows = append(rows, row)
	}

	return rows
}
