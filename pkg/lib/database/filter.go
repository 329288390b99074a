package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/util/dateutil"
)

var (
	ErrOperatorNotSupported = errors.New("operator not supported for property type")
	ErrUnexpectedCondition  = errors.New("unexpected group condition")
)

// Filter is a compiled filter condition. FilterPage never panics: malformed
// values and stale property references degrade to "no match".
type Filter interface {
	FilterPage(p domain.Page) bool
	String() string
}

// MakeFilters compiles a filter group against the schema. An empty group
// compiles to a filter that passes every page.
func MakeFilters(group FilterGroup, sch *Schema, loc *time.Location) (Filter, error) {
	return makeFilters(group, sch, loc, time.Now())
}

func makeFilters(group FilterGroup, sch *Schema, loc *time.Location, now time.Time) (Filter, error) {
	viewFilters := transformQuickOptions(group.Filters, sch, now, loc)

	compiled := make([]Filter, 0, len(viewFilters))
	for _, vf := range viewFilters {
		f, err := MakeFilter(vf, sch.PropertyByID(vf.PropertyID), loc)
		if err != nil {
			return nil, errors.Wrapf(err, "filter %s on property %s", vf.Operator, vf.PropertyID)
		}
		compiled = append(compiled, f)
	}
	switch group.Condition {
	case ConditionAnd, "":
		return FiltersAnd(compiled), nil
	case ConditionOr:
		return FiltersOr(compiled), nil
	default:
		return nil, errors.Wrapf(ErrUnexpectedCondition, "%q", group.Condition)
	}
}

// MakeFilter compiles a single condition. A nil property (stale reference to
// a deleted column) keeps the emptiness operators meaningful and turns every
// binary operator into a constant mismatch. A filter value that does not
// coerce to the type the operator needs fails closed the same way.
func MakeFilter(vf ViewFilter, prop *domain.Property, loc *time.Location) (Filter, error) {
	if prop == nil {
		switch vf.Operator {
		case OperatorIsEmpty:
			return FilterEmpty{Key: vf.PropertyID}, nil
		case OperatorIsNotEmpty:
			return FilterNot{FilterEmpty{Key: vf.PropertyID}}, nil
		default:
			return FilterNone{}, nil
		}
	}
	if !OperatorSupported(prop.Type, vf.Operator) {
		return nil, errors.Wrapf(ErrOperatorNotSupported, "%s on %s", vf.Operator, prop.Type)
	}
	key := prop.ID

	switch vf.Operator {
	case OperatorIsEmpty:
		return FilterEmpty{Key: key}, nil
	case OperatorIsNotEmpty:
		return FilterNot{FilterEmpty{Key: key}}, nil
	case OperatorIsChecked:
		return FilterEq{Key: key, Value: domain.Bool(true)}, nil
	case OperatorIsNotChecked:
		// unchecked means "not true", so a missing value passes
		return FilterNot{FilterEq{Key: key, Value: domain.Bool(true)}}, nil
	}

	switch {
	case prop.Type.IsTextLike():
		return makeTextFilter(key, vf)
	case prop.Type == domain.PropertyTypeNumber || prop.Type == domain.PropertyTypeProgress:
		return makeNumberFilter(key, vf)
	case prop.Type.IsDateLike():
		return makeDateFilter(key, vf, loc)
	case prop.Type == domain.PropertyTypeSelect:
		return makeSelectFilter(key, vf)
	case prop.Type.IsMultiValued():
		return makeListFilter(key, vf)
	default:
		return nil, errors.Wrapf(ErrOperatorNotSupported, "%s on %s", vf.Operator, prop.Type)
	}
}

func makeTextFilter(key string, vf ViewFilter) (Filter, error) {
	val, ok := vf.Value.String()
	if !ok {
		return FilterNone{}, nil
	}
	switch vf.Operator {
	case OperatorEquals:
		return FilterText{Key: key, Cond: TextCondEqual, Value: val}, nil
	case OperatorDoesNotEqual:
		return FilterNot{FilterText{Key: key, Cond: TextCondEqual, Value: val}}, nil
	case OperatorContains:
		return FilterText{Key: key, Cond: TextCondContains, Value: val}, nil
	case OperatorDoesNotContain:
		return FilterNot{FilterText{Key: key, Cond: TextCondContains, Value: val}}, nil
	case OperatorStartsWith:
		return FilterText{Key: key, Cond: TextCondPrefix, Value: val}, nil
	case OperatorEndsWith:
		return FilterText{Key: key, Cond: TextCondSuffix, Value: val}, nil
	}
	return nil, errors.Wrapf(ErrOperatorNotSupported, "%s on text", vf.Operator)
}

func makeNumberFilter(key string, vf ViewFilter) (Filter, error) {
	num, ok := vf.Value.CoerceFloat()
	if !ok {
		return FilterNone{}, nil
	}
	switch vf.Operator {
	case OperatorEquals:
		return FilterNum{Key: key, Cond: CmpEq, Value: num}, nil
	case OperatorDoesNotEqual:
		return FilterNot{FilterNum{Key: key, Cond: CmpEq, Value: num}}, nil
	case OperatorGreaterThan:
		return FilterNum{Key: key, Cond: CmpGt, Value: num}, nil
	case OperatorLessThan:
		return FilterNum{Key: key, Cond: CmpLt, Value: num}, nil
	case OperatorGreaterThanOrEqualTo:
		return FilterNum{Key: key, Cond: CmpGte, Value: num}, nil
	case OperatorLessThanOrEqualTo:
		return FilterNum{Key: key, Cond: CmpLte, Value: num}, nil
	}
	return nil, errors.Wrapf(ErrOperatorNotSupported, "%s on number", vf.Operator)
}

func makeDateFilter(key string, vf ViewFilter, loc *time.Location) (Filter, error) {
	day, ok := dateutil.DayTimestamp(vf.Value, loc)
	if !ok {
		return FilterNone{}, nil
	}
	var cond CmpOp
	switch vf.Operator {
	case OperatorEquals:
		cond = CmpEq
	case OperatorBefore:
		cond = CmpLt
	case OperatorAfter:
		cond = CmpGt
	case OperatorOnOrBefore:
		cond = CmpLte
	case OperatorOnOrAfter:
		cond = CmpGte
	default:
		return nil, errors.Wrapf(ErrOperatorNotSupported, "%s on date", vf.Operator)
	}
	return FilterDate{Key: key, Cond: cond, Day: day, Location: loc}, nil
}

func makeSelectFilter(key string, vf ViewFilter) (Filter, error) {
	val, ok := vf.Value.String()
	if !ok {
		return FilterNone{}, nil
	}
	switch vf.Operator {
	case OperatorIs:
		return FilterEq{Key: key, Value: domain.String(val)}, nil
	case OperatorIsNot:
		return FilterNot{FilterEq{Key: key, Value: domain.String(val)}}, nil
	case OperatorContains:
		return FilterHas{Key: key, Value: val}, nil
	case OperatorDoesNotContain:
		return FilterNot{FilterHas{Key: key, Value: val}}, nil
	}
	return nil, errors.Wrapf(ErrOperatorNotSupported, "%s on select", vf.Operator)
}

func makeListFilter(key string, vf ViewFilter) (Filter, error) {
	val, ok := vf.Value.String()
	if !ok {
		return FilterNone{}, nil
	}
	switch vf.Operator {
	case OperatorIs, OperatorContains:
		return FilterHas{Key: key, Value: val}, nil
	case OperatorIsNot, OperatorDoesNotContain:
		return FilterNot{FilterHas{Key: key, Value: val}}, nil
	}
	return nil, errors.Wrapf(ErrOperatorNotSupported, "%s on list", vf.Operator)
}

// FiltersAnd passes a page when every member passes. Empty passes everything.
type FiltersAnd []Filter

func (a FiltersAnd) FilterPage(p domain.Page) bool {
	for _, f := range a {
		if !f.FilterPage(p) {
			return false
		}
	}
	return true
}

func (a FiltersAnd) String() string {
	return joinFilters(a, " AND ")
}

// FiltersOr passes a page when any member passes. Empty passes everything,
// so that a view with no conditions shows every row regardless of the
// group's condition.
type FiltersOr []Filter

func (o FiltersOr) FilterPage(p domain.Page) bool {
	if len(o) == 0 {
		return true
	}
	for _, f := range o {
		if f.FilterPage(p) {
			return true
		}
	}
	return false
}

func (o FiltersOr) String() string {
	return joinFilters(o, " OR ")
}

func joinFilters[F ~[]Filter](filters F, sep string) string {
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		parts = append(parts, f.String())
	}
	return "(" + strings.Join(parts, sep) + ")"
}

type FilterNot struct {
	Filter Filter
}

func (n FilterNot) FilterPage(p domain.Page) bool {
	if n.Filter == nil {
		return false
	}
	return !n.Filter.FilterPage(p)
}

func (n FilterNot) String() string {
	return "NOT " + n.Filter.String()
}

// FilterNone matches nothing. It is the compiled form of a condition whose
// comparand cannot be interpreted, which fails closed instead of guessing.
type FilterNone struct{}

func (FilterNone) FilterPage(domain.Page) bool {
	return false
}

func (FilterNone) String() string {
	return "NONE"
}

type TextCond int

const (
	TextCondEqual TextCond = iota
	TextCondContains
	TextCondPrefix
	TextCondSuffix
)

// FilterText compares string cells case-insensitively. A non-string cell
// never matches.
type FilterText struct {
	Key   string
	Cond  TextCond
	Value string
}

func (f FilterText) FilterPage(p domain.Page) bool {
	val, ok := p.Value(f.Key).String()
	if !ok {
		return false
	}
	val = strings.ToLower(val)
	cmp := strings.ToLower(f.Value)
	switch f.Cond {
	case TextCondEqual:
		return val == cmp
	case TextCondContains:
		return strings.Contains(val, cmp)
	case TextCondPrefix:
		return strings.HasPrefix(val, cmp)
	case TextCondSuffix:
		return strings.HasSuffix(val, cmp)
	}
	return false
}

func (f FilterText) String() string {
	return fmt.Sprintf("%s TEXT[%d] %q", f.Key, f.Cond, f.Value)
}

type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpGt
	CmpGte
	CmpLt
	CmpLte
)

func compareOp(cond CmpOp, comp int) bool {
	switch cond {
	case CmpEq:
		return comp == 0
	case CmpGt:
		return comp > 0
	case CmpGte:
		return comp >= 0
	case CmpLt:
		return comp < 0
	case CmpLte:
		return comp <= 0
	}
	return false
}

// FilterNum compares number cells. The stored value coerces the same way the
// comparand did: floats directly, numeric strings by parsing. Anything else
// fails closed.
type FilterNum struct {
	Key   string
	Cond  CmpOp
	Value float64
}

func (f FilterNum) FilterPage(p domain.Page) bool {
	val, ok := p.Value(f.Key).CoerceFloat()
	if !ok {
		return false
	}
	comp := 0
	if val < f.Value {
		comp = -1
	} else if val > f.Value {
		comp = 1
	}
	return compareOp(f.Cond, comp)
}

func (f FilterNum) String() string {
	return fmt.Sprintf("%s NUM[%d] %v", f.Key, f.Cond, f.Value)
}

// FilterDate compares calendar days: both sides are cut to midnight in the
// configured location, so time-of-day never decides a match.
type FilterDate struct {
	Key      string
	Cond     CmpOp
	Day      int64
	Location *time.Location
}

func (f FilterDate) FilterPage(p domain.Page) bool {
	day, ok := dateutil.DayTimestamp(p.Value(f.Key), f.Location)
	if !ok {
		return false
	}
	comp := 0
	if day < f.Day {
		comp = -1
	} else if day > f.Day {
		comp = 1
	}
	return compareOp(f.Cond, comp)
}

func (f FilterDate) String() string {
	return fmt.Sprintf("%s DATE[%d] %d", f.Key, f.Cond, f.Day)
}

// FilterEq matches on exact value equality (select option ids, checkbox).
type FilterEq struct {
	Key   string
	Value domain.Value
}

func (f FilterEq) FilterPage(p domain.Page) bool {
	return p.Value(f.Key).Equal(f.Value)
}

func (f FilterEq) String() string {
	return fmt.Sprintf("%s = %v", f.Key, f.Value.Raw())
}

// FilterHas tests array membership, treating a scalar cell as a one-element
// list.
type FilterHas struct {
	Key   string
	Value string
}

func (f FilterHas) FilterPage(p domain.Page) bool {
	for _, v := range p.Value(f.Key).WrapToList() {
		if s, ok := v.String(); ok && s == f.Value {
			return true
		}
	}
	return false
}

func (f FilterHas) String() string {
	return fmt.Sprintf("%s HAS %q", f.Key, f.Value)
}

// FilterEmpty matches missing cells, empty strings and empty lists. Zero and
// false are values, not emptiness.
type FilterEmpty struct {
	Key string
}

func (f FilterEmpty) FilterPage(p domain.Page) bool {
	return p.Value(f.Key).IsEmpty()
}

func (f FilterEmpty) String() string {
	return fmt.Sprintf("%s EMPTY", f.Key)
}
