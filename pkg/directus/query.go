package directus

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Filter is a Directus filter object, e.g. {"status": {"_eq": "draft"}}.
type Filter map[string]any

// Eq matches field == value.
func Eq(field string, value any) Filter { return Filter{field: map[string]any{"_eq": value}} }

// Neq matches field != value.
func Neq(field string, value any) Filter { return Filter{field: map[string]any{"_neq": value}} }

// In matches field against any of values.
func In[V any](field string, values []V) Filter {
	return Filter{field: map[string]any{"_in": values}}
}

// IsNull matches records where field is null.
func IsNull(field string) Filter { return Filter{field: map[string]any{"_null": true}} }

// Gte matches field >= value.
func Gte(field string, value any) Filter { return Filter{field: map[string]any{"_gte": value}} }

// Lte matches field <= value.
func Lte(field string, value any) Filter { return Filter{field: map[string]any{"_lte": value}} }

// And combines filters; nil entries are skipped. A single filter is returned as is.
func And(filters ...Filter) Filter {
	kept := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if len(f) > 0 {
			kept = append(kept, f)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return Filter{"_and": kept}
}

// Or matches any of the filters.
func Or(filters ...Filter) Filter {
	return Filter{"_or": filters}
}

// LimitAll asks Directus for every record instead of the default page.
const LimitAll = -1

// Query holds the Directus global query parameters used by item reads.
type Query struct {
	Fields []string
	Filter Filter
	Search string
	Sort   []string
	// Limit of zero leaves the Directus default; LimitAll reads everything.
	Limit  int
	Offset int
}

// Values encodes q as URL query parameters.
func (q Query) Values() (url.Values, error) {
	v := url.Values{}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if len(q.Filter) > 0 {
		raw, err := json.Marshal(q.Filter)
		if err != nil {
			return nil, err
		}
		v.Set("filter", string(raw))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if len(q.Sort) > 0 {
		v.Set("sort", strings.Join(q.Sort, ","))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v, nil
}
