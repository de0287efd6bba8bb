package server

import (
	"cmp"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-league-admin/api"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

var reservedParams = map[string]bool{"page": true, "per_page": true, "search": true, "sort": true}

// row pairs an item with its JSON object form, which filtering, search and sorting work on.
type row[T any] struct {
	item   T
	fields map[string]any
}

// paginate applies the list query parameters to items: exact-match filters on any JSON field, a case-insensitive
// search over string fields, sort (prefix "-" for descending) and page/per_page.
func paginate[T any](items []T, q url.Values, path string) api.Page[T] {
	rows := make([]row[T], 0, len(items))
	for _, item := range items {
		rows = append(rows, row[T]{item: item, fields: jsonFields(item)})
	}

	for key, values := range q {
		if reservedParams[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		rows = slices.DeleteFunc(rows, func(r row[T]) bool {
			v, ok := r.fields[key]
			return ok && fmt.Sprint(v) != values[0]
		})
	}

	if search := strings.ToLower(strings.TrimSpace(q.Get("search"))); search != "" {
		rows = slices.DeleteFunc(rows, func(r row[T]) bool {
			return !matchesSearch(r.fields, search)
		})
	}

	if sortKey := q.Get("sort"); sortKey != "" {
		desc := strings.HasPrefix(sortKey, "-")
		sortKey = strings.TrimPrefix(sortKey, "-")
		slices.SortStableFunc(rows, func(a, b row[T]) int {
			c := compareValues(a.fields[sortKey], b.fields[sortKey])
			if desc {
				return -c
			}
			return c
		})
	}

	perPage := boundedInt(q.Get("per_page"), defaultPerPage, 1, maxPerPage)
	total := len(rows)
	lastPage := max(1, (total+perPage-1)/perPage)
	page := boundedInt(q.Get("page"), 1, 1, lastPage)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)
	data := make([]T, 0, end-start)
	for _, r := range rows[start:end] {
		data = append(data, r.item)
	}

	meta := api.Meta{CurrentPage: page, PerPage: perPage, Total: total, LastPage: lastPage, Path: path}
	if len(data) > 0 {
		meta.From = start + 1
		meta.To = end
	}
	return api.Page[T]{Success: true, Data: data, Meta: meta}
}

func jsonFields(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

func matchesSearch(fields map[string]any, search string) bool {
	for _, v := range fields {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}

// compareValues orders numbers numerically and everything else by its string form. Missing values sort first.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return cmp.Compare(af, bf)
	}
	return strings.Compare(strings.ToLower(fmt.Sprint(a)), strings.ToLower(fmt.Sprint(b)))
}

func boundedInt(raw string, fallback, lo, hi int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return min(max(n, lo), hi)
}
