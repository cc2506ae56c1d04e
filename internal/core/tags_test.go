package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func boundaryStrings(tags []BoundaryTag) string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.String()
	}
	return strings.Join(out, " ")
}

func TestIOBToBoundary(t *testing.T) {
	tests := []struct {
		name string
		iob  string
		want string
	}{
		{"single token entity", "O B-PER O", "O U-PER O"},
		{"multi token entity", "B-PER I-PER I-PER O", "B-PER I-PER L-PER O"},
		{"two token entity", "B-ORG I-ORG", "B-ORG L-ORG"},
		{"adjacent entities", "B-PER B-PER", "U-PER U-PER"},
		{"label change", "B-PER I-ORG", "U-PER U-ORG"},
		{"inside after outside", "O I-LOC I-LOC", "O B-LOC L-LOC"},
		{"all outside", "O O O", "O O O"},
		{"malformed tags", "B- X O", "O O O"},
		{"legacy prefix ignored", "B_PER I_PER", "O O"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IOBToBoundary(strings.Fields(tt.iob), SchemeIOB)
			assert.Equal(t, tt.want, boundaryStrings(got))
		})
	}
}

func TestIOBToBoundary_LegacyScheme(t *testing.T) {
	got := IOBToBoundary([]string{"B_PER", "I_PER", "O", "B_LOC", "B-ORG"}, SchemeLegacyIOB)
	assert.Equal(t, "B-PER L-PER O U-LOC O", boundaryStrings(got))
}

func TestSpansFromBoundary(t *testing.T) {
	tags := IOBToBoundary(strings.Fields("B-PER I-PER O B-LOC O B-ORG I-ORG"), SchemeIOB)
	assert.Equal(t, []Span{
		{Label: "PER", Start: 0, End: 2},
		{Label: "LOC", Start: 3, End: 4},
		{Label: "ORG", Start: 5, End: 7},
	}, SpansFromBoundary(tags))
}

func TestSpansFromBoundary_Inconsistent(t *testing.T) {
	tests := []struct {
		name string
		tags []BoundaryTag
		want []Span
	}{
		{
			name: "inside without begin",
			tags: []BoundaryTag{{Boundary: Outside}, {Boundary: Inside, Label: "PER"}, {Boundary: Last, Label: "PER"}},
			want: []Span{{Label: "PER", Start: 1, End: 3}},
		},
		{
			name: "never closed",
			tags: []BoundaryTag{{Boundary: Begin, Label: "PER"}, {Boundary: Inside, Label: "PER"}},
			want: []Span{{Label: "PER", Start: 0, End: 2}},
		},
		{
			name: "begin while open",
			tags: []BoundaryTag{{Boundary: Begin, Label: "PER"}, {Boundary: Begin, Label: "ORG"}, {Boundary: Last, Label: "ORG"}},
			want: []Span{{Label: "PER", Start: 0, End: 1}, {Label: "ORG", Start: 1, End: 3}},
		},
		{
			name: "outside while open",
			tags: []BoundaryTag{{Boundary: Begin, Label: "PER"}, {Boundary: Outside}, {Boundary: Unit, Label: "LOC"}},
			want: []Span{{Label: "PER", Start: 0, End: 1}, {Label: "LOC", Start: 2, End: 3}},
		},
		{
			name: "label switch inside",
			tags: []BoundaryTag{{Boundary: Begin, Label: "PER"}, {Boundary: Last, Label: "ORG"}},
			want: []Span{{Label: "PER", Start: 0, End: 1}, {Label: "ORG", Start: 1, End: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SpansFromBoundary(tt.tags))
		})
	}
}

func TestIOBToSpans_UnclosedAtEnd(t *testing.T) {
	spans := IOBToSpans([]string{"O", "B-PER", "I-PER"}, SchemeIOB)
	assert.Equal(t, []Span{{Label: "PER", Start: 1, End: 3}}, spans)
}

func TestCountInitialEntities(t *testing.T) {
	assert.Equal(t, 3, CountInitialEntities([]string{"B-PER", "I-PER", "B_LOC", "O", "B-ORG"}))
	assert.Equal(t, 0, CountInitialEntities([]string{"O", "I-PER"}))
}

func TestParseTagScheme(t *testing.T) {
	s, err := ParseTagScheme("")
	assert.NoError(t, err)
	assert.Equal(t, SchemeIOB, s)

	s, err = ParseTagScheme("legacy")
	assert.NoError(t, err)
	assert.Equal(t, SchemeLegacyIOB, s)

	_, err = ParseTagScheme("bilou")
	assert.Error(t, err)
}
