package database

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Ketchio-dev/note-web-sub000/core/config"
	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/util/slice"
)

type Condition string

const (
	ConditionAnd Condition = "AND"
	ConditionOr  Condition = "OR"
)

type Direction string

const (
	DirectionAscending  Direction = "ascending"
	DirectionDescending Direction = "descending"
)

type ViewType string

const (
	ViewTypeTable    ViewType = "table"
	ViewTypeBoard    ViewType = "board"
	ViewTypeCalendar ViewType = "calendar"
	ViewTypeGallery  ViewType = "gallery"
	ViewTypeChart    ViewType = "chart"
)

// ViewFilter is the persisted shape of one filter condition. Value is
// ignored for unary operators.
type ViewFilter struct {
	ID          string       `json:"id"`
	PropertyID  string       `json:"propertyId"`
	Operator    Operator     `json:"operator"`
	Value       domain.Value `json:"value,omitempty"`
	QuickOption QuickOption  `json:"quickOption,omitempty"`
}

// FilterGroup combines conditions one level deep. Nested groups are a
// deliberate non-feature: the view controls only ever produce a flat list.
type FilterGroup struct {
	Condition Condition    `json:"condition"`
	Filters   []ViewFilter `json:"filters"`
}

// Sort is one entry of a compound sort; earlier entries take precedence.
type Sort struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	Direction  Direction `json:"direction"`
}

// SavedView is a named snapshot of view type plus filters and sorts,
// persisted on the database parent page.
type SavedView struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	ViewType ViewType    `json:"viewType"`
	Filters  FilterGroup `json:"filters"`
	Sorts    []Sort      `json:"sorts"`
}

func NewSavedView(name string, viewType ViewType, filters FilterGroup, sorts []Sort) SavedView {
	return SavedView{
		ID:       uuid.NewString(),
		Name:     name,
		ViewType: viewType,
		Filters:  filters,
		Sorts:    sorts,
	}
}

// Validate checks the snapshot against the schema, reporting every problem.
func (v SavedView) Validate(sch *Schema) error {
	var result *multierror.Error
	if v.Name == "" {
		result = multierror.Append(result, fmt.Errorf("view name is required"))
	}
	switch v.Filters.Condition {
	case ConditionAnd, ConditionOr, "":
	default:
		result = multierror.Append(result, fmt.Errorf("unknown group condition %q", v.Filters.Condition))
	}
	for _, f := range v.Filters.Filters {
		prop := sch.PropertyByID(f.PropertyID)
		if prop == nil {
			// stale filters are legal, they just match nothing
			continue
		}
		if !OperatorSupported(prop.Type, f.Operator) {
			result = multierror.Append(result, fmt.Errorf("operator %q not applicable to %s property %q", f.Operator, prop.Type, prop.Name))
		}
	}
	for _, s := range v.Sorts {
		if s.Direction != DirectionAscending && s.Direction != DirectionDescending {
			result = multierror.Append(result, fmt.Errorf("unknown sort direction %q", s.Direction))
		}
	}
	return result.ErrorOrNil()
}

// ApplyFilters evaluates the group against every page, preserving input
// order. It never fails: conditions that cannot be compiled are skipped with
// a warning, because this runs on the render path.
func ApplyFilters(pages []domain.Page, group FilterGroup, sch *Schema, loc *time.Location) []domain.Page {
	f, err := MakeFilters(group, sch, loc)
	if err != nil {
		log.Warnf("apply filters: %s", err)
		f = makeFiltersLenient(group, sch, loc)
	}
	res := make([]domain.Page, 0, len(pages))
	for _, p := range pages {
		if f.FilterPage(p) {
			res = append(res, p)
		}
	}
	return res
}

// makeFiltersLenient drops the conditions that failed to compile and keeps
// the rest, so a single corrupt filter does not blank the whole view.
func makeFiltersLenient(group FilterGroup, sch *Schema, loc *time.Location) Filter {
	kept := slice.Filter(append([]ViewFilter(nil), group.Filters...), func(vf ViewFilter) bool {
		_, err := MakeFilter(vf, sch.PropertyByID(vf.PropertyID), loc)
		return err == nil
	})
	f, err := MakeFilters(FilterGroup{Condition: group.Condition, Filters: kept}, sch, loc)
	if err != nil {
		// only a broken condition string is left; match everything
		return FiltersAnd{}
	}
	return f
}

// ApplySorts returns a new, stably sorted slice. With no sorts the copy
// keeps the input order.
func ApplySorts(pages []domain.Page, sorts []Sort, sch *Schema, loc *time.Location) []domain.Page {
	res := append([]domain.Page(nil), pages...)
	order := MakeOrder(sorts, sch, loc)
	if order == nil {
		return res
	}
	sort.SliceStable(res, func(i, j int) bool {
		return order.Compare(res[i], res[j]) < 0
	})
	return res
}

// ViewBuilder is the memoized entry point view renderers call. Results are
// cached by a canonical fingerprint of the inputs, so recomputation with
// deep-equal pages, filters and sorts is a lookup, and a superseded
// computation can never overwrite a newer one: any input change produces a
// different key.
type ViewBuilder struct {
	sch   *Schema
	loc   *time.Location
	cache *lru.Cache[string, []domain.Page]
}

func NewViewBuilder(sch *Schema, cfg *config.Config) (*ViewBuilder, error) {
	cache, err := lru.New[string, []domain.Page](cfg.ViewCacheSize)
	if err != nil {
		return nil, err
	}
	return &ViewBuilder{
		sch:   sch,
		loc:   cfg.Location(),
		cache: cache,
	}, nil
}

// BuildView composes filtering then sorting.
func (b *ViewBuilder) BuildView(pages []domain.Page, group FilterGroup, sorts []Sort) []domain.Page {
	key := viewFingerprint(pages, group, sorts)
	if cached, ok := b.cache.Get(key); ok {
		return cached
	}
	res := ApplySorts(ApplyFilters(pages, group, b.sch, b.loc), sorts, b.sch, b.loc)
	b.cache.Add(key, res)
	log.Debugf("view %x rebuilt: %d of %d pages", slice.Hash(key), len(res), len(pages))
	return res
}

// viewFingerprint serializes the three inputs canonically: page values are
// written in sorted key order so that deep-equal inputs always produce the
// same key regardless of map iteration order.
func viewFingerprint(pages []domain.Page, group FilterGroup, sorts []Sort) string {
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(p.ID)
		sb.WriteByte(0x1f)
		sb.WriteString(p.Title)
		sb.WriteByte(0x1f)
		if p.Values != nil {
			keys := p.Values.Keys()
			sort.Strings(keys)
			for _, k := range keys {
				sb.WriteString(k)
				sb.WriteByte('=')
				raw, err := json.Marshal(p.Values.Get(k))
				if err == nil {
					sb.Write(raw)
				}
				sb.WriteByte(0x1f)
			}
		}
		sb.WriteByte(0x1e)
	}
	if raw, err := json.Marshal(group); err == nil {
		sb.Write(raw)
	}
	sb.WriteByte(0x1e)
	if raw, err := json.Marshal(sorts); err == nil {
		sb.Write(raw)
	}
	return sb.String()
}
