package database

import (
	"strings"
	"time"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/util/dateutil"
)

// Order produces a total order over pages.
type Order interface {
	Compare(a, b domain.Page) int
	String() string
}

// SetOrder evaluates keys in array order; the first non-zero comparison
// decides the pair.
type SetOrder []Order

func (so SetOrder) Compare(a, b domain.Page) int {
	for _, o := range so {
		if comp := o.Compare(a, b); comp != 0 {
			return comp
		}
	}
	return 0
}

func (so SetOrder) String() string {
	parts := make([]string, 0, len(so))
	for _, o := range so {
		parts = append(parts, o.String())
	}
	return strings.Join(parts, ", ")
}

// KeyOrder compares one property. Missing and uncomparable values sort last
// in BOTH directions: the descending negation applies only to pairs of
// defined values, never to the empty check.
type KeyOrder struct {
	Key         string
	Direction   Direction
	Format      domain.PropertyType
	IncludeTime bool
	Location    *time.Location
}

func (ko KeyOrder) Compare(a, b domain.Page) int {
	av := a.Value(ko.Key)
	bv := b.Value(ko.Key)

	aKey, aOk := ko.sortKey(av)
	bKey, bOk := ko.sortKey(bv)
	if !aOk || !bOk {
		switch {
		case !aOk && !bOk:
			return 0
		case !aOk:
			return 1
		default:
			return -1
		}
	}

	comp := aKey.Compare(bKey)
	if ko.Direction == DirectionDescending {
		comp = -comp
	}
	return comp
}

// sortKey normalizes a cell into a comparable value of the key's format. The
// second result is false when the cell reads as empty and must go last.
func (ko KeyOrder) sortKey(v domain.Value) (domain.Value, bool) {
	if v.IsEmpty() {
		return domain.None(), false
	}
	switch {
	case ko.Format == domain.PropertyTypeNumber || ko.Format == domain.PropertyTypeProgress:
		f, ok := v.CoerceFloat()
		if !ok {
			return domain.None(), false
		}
		return domain.Float64(f), true
	case ko.Format.IsDateLike():
		var (
			ts int64
			ok bool
		)
		if ko.IncludeTime {
			ts, ok = dateutil.Timestamp(v, ko.Location)
		} else {
			ts, ok = dateutil.DayTimestamp(v, ko.Location)
		}
		if !ok {
			return domain.None(), false
		}
		return domain.Int64(ts), true
	case ko.Format == domain.PropertyTypeCheckbox:
		b, ok := v.Bool()
		if !ok {
			return domain.None(), false
		}
		return domain.Bool(b), true
	default:
		// text, select and everything else compare as case-insensitive text
		if s, ok := v.String(); ok {
			return domain.String(strings.ToLower(s)), true
		}
		if list, ok := v.StringList(); ok {
			return domain.String(strings.ToLower(strings.Join(list, ", "))), true
		}
		return v, true
	}
}

func (ko KeyOrder) String() string {
	s := ko.Key
	if ko.Direction == DirectionDescending {
		s += " DESC"
	}
	return s
}

// MakeOrder builds the composite comparator for a sort list. Unknown
// property references produce keys that read every cell as missing, so
// stale sorts degrade to "everything ties".
func MakeOrder(sorts []Sort, sch *Schema, loc *time.Location) SetOrder {
	if len(sorts) == 0 {
		return nil
	}
	order := make(SetOrder, 0, len(sorts))
	for _, sort := range sorts {
		keyOrder := KeyOrder{
			Key:       sort.PropertyID,
			Direction: sort.Direction,
			Location:  loc,
		}
		if prop := sch.PropertyByID(sort.PropertyID); prop != nil {
			keyOrder.Format = prop.Type
		}
		order = append(order, keyOrder)
	}
	return order
}
