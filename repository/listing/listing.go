package listing

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const DefaultPageSize = 12

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query is one page request. Page is 1-indexed; an empty Sort falls back
// to the entity's default column, newest first.
type Query struct {
	Page   int
	Search string
	Sort   string
	Dir    Direction
}

type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// Spec describes how one table is searched and sorted.
type Spec struct {
	// From is everything after SELECT <cols>, e.g. "FROM rentals r LEFT JOIN ...".
	From string
	// Columns is the select list.
	Columns string
	// Searchable expressions are matched case-insensitively as text.
	Searchable []string
	// Sortable maps public sort keys to SQL expressions.
	Sortable    map[string]string
	DefaultSort string
	// Tiebreak keeps ordering stable across pages.
	Tiebreak string
}

func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// Where returns a WHERE clause matching term against every searchable
// expression, or "" when term is blank.
func (s Spec) Where(term string) (string, []any) {
	term = strings.TrimSpace(term)
	if term == "" || len(s.Searchable) == 0 {
		return "", nil
	}
	conds := make([]string, len(s.Searchable))
	for i, col := range s.Searchable {
		conds[i] = fmt.Sprintf(`LOWER(CAST(%s AS TEXT)) LIKE $1 ESCAPE '\'`, col)
	}
	return "WHERE (" + strings.Join(conds, " OR ") + ")", []any{"%" + escapeLike(strings.ToLower(term)) + "%"}
}

// OrderBy never interpolates caller input: unknown keys use the default.
func (s Spec) OrderBy(q Query) string {
	col, ok := s.Sortable[q.Sort]
	dir := "ASC"
	if !ok {
		col, dir = s.DefaultSort, "DESC"
	} else if q.Dir == Desc {
		dir = "DESC"
	}
	if s.Tiebreak == "" || s.Tiebreak == col {
		return fmt.Sprintf("ORDER BY %s %s", col, dir)
	}
	return fmt.Sprintf("ORDER BY %s %s, %s %s", col, dir, s.Tiebreak, dir)
}

// Fetch runs the count and the page query for q.
func Fetch[T any](ctx context.Context, db *sql.DB, s Spec, q Query, size int, scan func(*sql.Rows) (T, error)) (Page[T], error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	out := Page[T]{Items: []T{}, Page: q.Page, PageSize: size}

	where, args := s.Where(q.Search)
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) "+s.From+" "+where, args...).Scan(&out.Total); err != nil {
		return out, err
	}

	n := len(args)
	query := fmt.Sprintf("SELECT %s %s %s %s LIMIT $%d OFFSET $%d",
		s.Columns, s.From, where, s.OrderBy(q), n+1, n+2)
	rows, err := db.QueryContext(ctx, query, append(args, size, Offset(q.Page, size))...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, item)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
