package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const maxLineSize = 1024 * 1024

// Dialect describes how a line is split into fields. A Quote of 0 disables
// quoting entirely.
type Dialect struct {
	Delimiter rune
	Quote     rune
}

var DefaultDialect = Dialect{Delimiter: '\t', Quote: '"'}

// RowIterator yields one row per input line. An empty row marks a blank line.
// Iterators returned by ReadRows are single use: ranging over one a second
// time yields nothing.
type RowIterator func(yield func(row []string, err error) bool)

// ReadRows opens path when iteration begins and closes it when iteration ends,
// whether the input was exhausted or the caller stopped early.
func ReadRows(path string, dialect Dialect) RowIterator {
	done := false
	return func(yield func(row []string, err error) bool) {
		if done {
			return
		}
		done = true

		file, err := os.Open(path)
		if err != nil {
			yield(nil, fmt.Errorf("error opening %s: %w", path, err))
			return
		}
		defer file.Close()

		for row, err := range readRows(file, dialect) {
			if !yield(row, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

func readRows(r io.Reader, dialect Dialect) RowIterator {
	return func(yield func(row []string, err error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if !yield(splitLine(line, dialect), nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("error reading rows: %w", err))
		}
	}
}

func splitLine(line string, dialect Dialect) []string {
	if line == "" {
		return []string{}
	}

	runes := []rune(line)
	fields := make([]string, 0, 4)

	for i := 0; ; {
		field, next := splitField(runes, i, dialect)
		fields = append(fields, field)
		if next > len(runes) {
			return fields
		}
		i = next
	}
}

// splitField parses the field starting at runes[i] and returns it along with
// the index just past the following delimiter. A returned index greater than
// len(runes) means the line has no more fields.
func splitField(runes []rune, i int, dialect Dialect) (string, int) {
	if dialect.Quote != 0 && i < len(runes) && runes[i] == dialect.Quote {
		if field, next, ok := splitQuotedField(runes, i+1, dialect); ok {
			return field, next
		}
		// an unterminated quote is kept as literal text
	}

	end := i
	for end < len(runes) && runes[end] != dialect.Delimiter {
		end++
	}
	return string(runes[i:end]), end + 1
}

func splitQuotedField(runes []rune, i int, dialect Dialect) (string, int, bool) {
	var sb strings.Builder
	for i < len(runes) {
		if runes[i] != dialect.Quote {
			sb.WriteRune(runes[i])
			i++
			continue
		}

		if i+1 < len(runes) && runes[i+1] == dialect.Quote {
			sb.WriteRune(dialect.Quote)
			i += 2
			continue
		}

		// text between the closing quote and the delimiter is appended as is
		end := i + 1
		for end < len(runes) && runes[end] != dialect.Delimiter {
			sb.WriteRune(runes[end])
			end++
		}
		return sb.String(), end + 1, true
	}
	return "", 0, false
}
