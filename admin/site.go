// Package admin describes the operator-facing CRUD surface. The Site is an
// explicit registry assembled once at startup; handlers consult it to decide
// which columns may be searched and filtered.
package admin

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"catalog/repository"
)

type FilterKind string

const (
	// FilterExact matches the column value verbatim.
	FilterExact FilterKind = "exact"
	// FilterDate accepts a period (today, week, month, year) and matches
	// rows on or after its start.
	FilterDate FilterKind = "date"
)

type ListFilter struct {
	Field string     `json:"field"`
	Kind  FilterKind `json:"kind"`
}

type ModelAdmin struct {
	Name             string       `json:"name"`
	ListDisplay      []string     `json:"list_display"`
	SearchFields     []string     `json:"search_fields,omitempty"`
	ListFilter       []ListFilter `json:"list_filter,omitempty"`
	Inlines          []string     `json:"inlines,omitempty"`
	FilterHorizontal []string     `json:"filter_horizontal,omitempty"`
}

type Site struct {
	models map[string]ModelAdmin
}

func NewSite() *Site {
	return &Site{models: make(map[string]ModelAdmin)}
}

func (s *Site) Register(m ModelAdmin) error {
	if m.Name == "" {
		return fmt.Errorf("admin: model name is required")
	}
	if _, ok := s.models[m.Name]; ok {
		return fmt.Errorf("admin: %s is already registered", m.Name)
	}
	s.models[m.Name] = m
	return nil
}

func (s *Site) Get(name string) (ModelAdmin, bool) {
	m, ok := s.models[name]
	return m, ok
}

// Models returns the registered models sorted by name.
func (s *Site) Models() []ModelAdmin {
	out := make([]ModelAdmin, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ListOptions turns query parameters into repository list options. Only
// registered filter fields are honoured; unknown parameters are ignored.
func (m ModelAdmin) ListOptions(query map[string]string, now time.Time) (repository.ListOptions, error) {
	opts := repository.ListOptions{
		Search:       strings.TrimSpace(query["q"]),
		SearchFields: m.SearchFields,
	}

	for _, filter := range m.ListFilter {
		value, ok := query[filter.Field]
		if !ok || value == "" {
			continue
		}
		switch filter.Kind {
		case FilterDate:
			since, err := periodStart(value, now)
			if err != nil {
				return repository.ListOptions{}, err
			}
			if opts.Since == nil {
				opts.Since = make(map[string]time.Time)
			}
			opts.Since[filter.Field] = since
		default:
			if opts.Filters == nil {
				opts.Filters = make(map[string]string)
			}
			opts.Filters[filter.Field] = value
		}
	}
	return opts, nil
}

func periodStart(period string, now time.Time) (time.Time, error) {
	today := now.UTC().Truncate(24 * time.Hour)
	switch period {
	case "today":
		return today, nil
	case "week":
		return today.AddDate(0, 0, -7), nil
	case "month":
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case "year":
		return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unknown period %q", period)
}

// DefaultSite registers the catalog models.
func DefaultSite() *Site {
	site := NewSite()
	for _, m := range []ModelAdmin{
		{
			Name:         "products",
			ListDisplay:  []string{"name", "type", "price", "date_added"},
			SearchFields: []string{"name", "description"},
			ListFilter:   []ListFilter{{Field: "type", Kind: FilterExact}, {Field: "date_added", Kind: FilterDate}},
			Inlines:      []string{"reviews"},
		},
		{
			Name:        "reviews",
			ListDisplay: []string{"product", "user", "rating", "created_at"},
		},
		{
			Name:             "stores",
			ListDisplay:      []string{"name", "location", "owner"},
			SearchFields:     []string{"name", "location"},
			FilterHorizontal: []string{"product_variety"},
		},
		{
			Name:        "certificates",
			ListDisplay: []string{"certificate_name", "product", "issued_date"},
			ListFilter:  []ListFilter{{Field: "issued_date", Kind: FilterDate}},
		},
	} {
		if err := site.Register(m); err != nil {
			panic(err)
		}
	}
	return site
}
