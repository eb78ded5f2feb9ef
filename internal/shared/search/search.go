package search

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Criteria is one filter in a search request. Field names are API-level
// property names and must be translated through a per-entity whitelist
// before touching SQL.
type Criteria struct {
	Field string `json:"filterKey" binding:"required"`
	Op    string `json:"operation" binding:"required"`
	Value any    `json:"value"`
}

type Request struct {
	Criteria  []Criteria `json:"searchCriteriaList"`
	MatchAny  bool       `json:"matchAny"`
	Sort      string     `json:"sort"`
	Ascending bool       `json:"ascending"`
}

type BadCriteriaError struct {
	Field string
	Op    string
}

func (e *BadCriteriaError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("unsupported search operation [%s] for property [%s]", e.Op, e.Field)
	}
	return fmt.Sprintf("unknown search property [%s]", e.Field)
}

type Condition struct {
	Expr string
	Args []any
}

// Translate maps one criteria to a SQL fragment using the column whitelist.
func Translate(c Criteria, fields map[string]string) (Condition, error) {
	column, ok := fields[c.Field]
	if !ok {
		return Condition{}, &BadCriteriaError{Field: c.Field}
	}

	switch c.Op {
	case "eq":
		return Condition{Expr: column + " = ?", Args: []any{c.Value}}, nil
	case "ne":
		return Condition{Expr: column + " <> ?", Args: []any{c.Value}}, nil
	case "gt":
		return Condition{Expr: column + " > ?", Args: []any{c.Value}}, nil
	case "ge":
		return Condition{Expr: column + " >= ?", Args: []any{c.Value}}, nil
	case "lt":
		return Condition{Expr: column + " < ?", Args: []any{c.Value}}, nil
	case "le":
		return Condition{Expr: column + " <= ?", Args: []any{c.Value}}, nil
	case "cn":
		return Condition{Expr: column + " LIKE ?", Args: []any{"%" + fmt.Sprint(c.Value) + "%"}}, nil
	case "bw":
		return Condition{Expr: column + " LIKE ?", Args: []any{fmt.Sprint(c.Value) + "%"}}, nil
	case "nu":
		return Condition{Expr: column + " IS NULL"}, nil
	case "nn":
		return Condition{Expr: column + " IS NOT NULL"}, nil
	default:
		return Condition{}, &BadCriteriaError{Field: c.Field, Op: c.Op}
	}
}

// Filter builds the criteria of req into one grouped condition on db.
// The result is meant to be attached to an outer query via Where(...) so
// an any-match group cannot escape mandatory filters added by the caller.
func Filter(db *gorm.DB, req Request, fields map[string]string) (*gorm.DB, error) {
	group := db
	for i, c := range req.Criteria {
		cond, err := Translate(c, fields)
		if err != nil {
			return nil, err
		}
		if req.MatchAny && i > 0 {
			group = group.Or(cond.Expr, cond.Args...)
		} else {
			group = group.Where(cond.Expr, cond.Args...)
		}
	}
	return group, nil
}

// OrderClause resolves the requested sort property, empty when unsorted.
func OrderClause(req Request, fields map[string]string) (string, error) {
	sort := strings.TrimSpace(req.Sort)
	if sort == "" {
		return "", nil
	}
	column, ok := fields[sort]
	if !ok {
		return "", &BadCriteriaError{Field: sort}
	}
	if req.Ascending {
		return column + " ASC", nil
	}
	return column + " DESC", nil
}
