package core

import (
	"fmt"
	"math"

	"github.com/alecthomas/participle/v2"
)

/*
Documents can be narrowed with a small query language over their entities:

Query       := Expr
Expr        := AndExpr ( "OR" AndExpr )*
AndExpr     := Condition ( "AND" Condition )*
Condition   := "NOT"? ( Match | "(" Expr ")" )
Match       := "COUNT" <label> CountOp <int>
             | <label> ( TextOp <string> )?
CountOp     := "<" | ">" | "="
TextOp      := "CONTAINS" | "!=" | "<" | ">" | "="

A bare <label> matches documents that contain at least one entity with that
label, e.g.

	PER AND NOT ORG
	PER CONTAINS "smith" OR COUNT GPE > 2
*/

var (
	queryParser = participle.MustBuild[Query](
		participle.Unquote("String"),
		participle.Union[QueryValue](QueryString{}, QueryInt{}),
	)
)

func ParseQuery(query string) (Filter, error) {
	q, err := queryParser.ParseString("", query)
	if err != nil {
		return nil, fmt.Errorf("error parsing query '%s': %w", query, err)
	}

	filter, err := q.Expr.ToFilter()
	if err != nil {
		return nil, fmt.Errorf("error converting query '%s' to filter: %w", query, err)
	}

	return filter, nil
}

type Query struct {
	Expr *Expr `@@`
}

type Expr struct {
	Ands []*AndExpr `@@ ( "OR" @@ )*`
}

func (e *Expr) ToFilter() (Filter, error) {
	filters := make([]Filter, 0, len(e.Ands))
	for _, and := range e.Ands {
		f, err := and.ToFilter()
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	switch len(filters) {
	case 0:
		return nil, fmt.Errorf("empty OR expression")
	case 1:
		return filters[0], nil
	default:
		return &OrFilter{filters: filters}, nil
	}
}

type AndExpr struct {
	Conditions []*Condition `@@ ( "AND" @@ )*`
}

func (e *AndExpr) ToFilter() (Filter, error) {
	filters := make([]Filter, 0, len(e.Conditions))
	for _, cond := range e.Conditions {
		f, err := cond.ToFilter()
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	switch len(filters) {
	case 0:
		return nil, fmt.Errorf("empty AND expression")
	case 1:
		return filters[0], nil
	default:
		return &AndFilter{filters: filters}, nil
	}
}

type Condition struct {
	Not     bool   `@"NOT"?`
	Match   *Match `( @@`
	SubExpr *Expr  `| "(" @@ ")" )`
}

func (c *Condition) ToFilter() (Filter, error) {
	var filter Filter
	var err error
	if c.Match != nil {
		filter, err = c.Match.ToFilter()
	} else {
		filter, err = c.SubExpr.ToFilter()
	}
	if err != nil {
		return nil, err
	}

	if c.Not {
		return &NotFilter{filter: filter}, nil
	}
	return filter, nil
}

type Match struct {
	Count bool       `@"COUNT"?`
	Label string     `@Ident`
	Op    string     `( @( "CONTAINS" | "!" "=" | "<" | ">" | "=" )`
	Value QueryValue `  @@ )?`
}

func (m *Match) ToFilter() (Filter, error) {
	if m.Count {
		if m.Op == "" {
			return nil, fmt.Errorf("COUNT %s requires a comparison", m.Label)
		}
		i, ok := m.Value.(QueryInt)
		if !ok {
			return nil, fmt.Errorf("COUNT %s must be compared to an int", m.Label)
		}

		switch m.Op {
		case "<":
			return &CountFilter{label: m.Label, min: -1, max: i.Value}, nil
		case ">":
			return &CountFilter{label: m.Label, min: i.Value, max: math.MaxInt}, nil
		case "=":
			return &CountFilter{label: m.Label, min: i.Value - 1, max: i.Value + 1}, nil
		default:
			return nil, fmt.Errorf("invalid operator %s used with COUNT", m.Op)
		}
	}

	if m.Op == "" {
		return &LabelFilter{label: m.Label}, nil
	}

	s, ok := m.Value.(QueryString)
	if !ok {
		return nil, fmt.Errorf("%s %s must be compared to a string", m.Label, m.Op)
	}
	return &TextFilter{label: m.Label, op: m.Op, value: s.Value}, nil
}

type QueryValue interface{ queryValue() }

type QueryString struct {
	Value string `@String`
}

func (QueryString) queryValue() {}

type QueryInt struct {
	Value int `@Int`
}

func (QueryInt) queryValue() {}
