package core

import (
	"fmt"
	"strings"
)

type TagScheme int

const (
	// SchemeIOB tags look like B-PER, I-PER, O.
	SchemeIOB TagScheme = iota
	// SchemeLegacyIOB tags look like B_PER, I_PER, O.
	SchemeLegacyIOB
)

func ParseTagScheme(s string) (TagScheme, error) {
	switch strings.ToLower(s) {
	case "", "iob":
		return SchemeIOB, nil
	case "legacy", "legacy_iob":
		return SchemeLegacyIOB, nil
	default:
		return SchemeIOB, fmt.Errorf("unknown tag scheme '%s'", s)
	}
}

func (s TagScheme) String() string {
	switch s {
	case SchemeLegacyIOB:
		return "legacy"
	default:
		return "iob"
	}
}

func (s TagScheme) separator() byte {
	if s == SchemeLegacyIOB {
		return '_'
	}
	return '-'
}

// split returns the prefix letter and label of tag. ok is false for O and for
// tags that do not follow the scheme.
func (s TagScheme) split(tag string) (prefix byte, label string, ok bool) {
	if len(tag) < 3 || tag[1] != s.separator() {
		return 0, "", false
	}
	return tag[0], tag[2:], true
}

const OutsideTag = "O"

// IsInitialEntityTag reports whether tag opens an entity in either the B- or
// the legacy B_ convention, regardless of the scheme used for conversion.
func IsInitialEntityTag(tag string) bool {
	return strings.HasPrefix(tag, "B-") || strings.HasPrefix(tag, "B_")
}

func CountInitialEntities(tags []string) int {
	count := 0
	for _, tag := range tags {
		if IsInitialEntityTag(tag) {
			count++
		}
	}
	return count
}

type Boundary int

const (
	Outside Boundary = iota
	Begin
	Inside
	Last
	Unit
)

func (b Boundary) String() string {
	switch b {
	case Begin:
		return "B"
	case Inside:
		return "I"
	case Last:
		return "L"
	case Unit:
		return "U"
	default:
		return "O"
	}
}

type BoundaryTag struct {
	Boundary Boundary
	Label    string
}

func (t BoundaryTag) String() string {
	if t.Boundary == Outside {
		return OutsideTag
	}
	return t.Boundary.String() + "-" + t.Label
}

// IOBToBoundary converts IOB tags into the begin/inside/last/unit/outside
// scheme. Every tag that is not outside opens an entity, which then extends
// over the following I or L tags of the same label.
func IOBToBoundary(tags []string, scheme TagScheme) []BoundaryTag {
	out := make([]BoundaryTag, 0, len(tags))

	for i := 0; i < len(tags); {
		_, label, ok := scheme.split(tags[i])
		if !ok {
			out = append(out, BoundaryTag{Boundary: Outside})
			i++
			continue
		}

		length := 1
		for i+length < len(tags) {
			prefix, next, ok := scheme.split(tags[i+length])
			if !ok || next != label || (prefix != 'I' && prefix != 'L') {
				break
			}
			length++
		}

		if length == 1 {
			out = append(out, BoundaryTag{Boundary: Unit, Label: label})
		} else {
			out = append(out, BoundaryTag{Boundary: Begin, Label: label})
			for j := 1; j < length-1; j++ {
				out = append(out, BoundaryTag{Boundary: Inside, Label: label})
			}
			out = append(out, BoundaryTag{Boundary: Last, Label: label})
		}
		i += length
	}

	return out
}

// Span is a labeled token range [Start, End).
type Span struct {
	Label string
	Start int
	End   int
}

// SpansFromBoundary collects Unit tags and Begin..Last runs into spans.
// Inconsistent sequences are repaired rather than rejected: an Inside or Last
// with no open span opens one, a Begin or Unit closes any open span, Outside
// closes an open span, and a span open at the end of the sequence is closed
// there.
func SpansFromBoundary(tags []BoundaryTag) []Span {
	var spans []Span
	open := -1
	label := ""

	closeOpen := func(end int) {
		if open >= 0 {
			spans = append(spans, Span{Label: label, Start: open, End: end})
			open = -1
		}
	}

	for i, tag := range tags {
		switch tag.Boundary {
		case Outside:
			closeOpen(i)
		case Unit:
			closeOpen(i)
			spans = append(spans, Span{Label: tag.Label, Start: i, End: i + 1})
		case Begin:
			closeOpen(i)
			open, label = i, tag.Label
		case Inside, Last:
			if open >= 0 && tag.Label != label {
				closeOpen(i)
			}
			if open < 0 {
				open, label = i, tag.Label
			}
			if tag.Boundary == Last {
				closeOpen(i + 1)
			}
		}
	}
	closeOpen(len(tags))

	return spans
}

func IOBToSpans(tags []string, scheme TagScheme) []Span {
	return SpansFromBoundary(IOBToBoundary(tags, scheme))
}
