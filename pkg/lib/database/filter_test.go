package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
)

func testSchema() *Schema {
	return NewSchema([]domain.Property{
		{ID: "title", Name: "Name", Type: domain.PropertyTypeText},
		{ID: "price", Name: "Price", Type: domain.PropertyTypeNumber},
		{ID: "status", Name: "Status", Type: domain.PropertyTypeSelect,
			Options: []domain.PropertyOption{{ID: "open", Name: "Open"}, {ID: "done", Name: "Done"}}},
		{ID: "tags", Name: "Tags", Type: domain.PropertyTypeMultiSelect,
			Options: []domain.PropertyOption{{ID: "red", Name: "Red"}, {ID: "blue", Name: "Blue"}}},
		{ID: "due", Name: "Due", Type: domain.PropertyTypeDate},
		{ID: "paid", Name: "Paid", Type: domain.PropertyTypeCheckbox},
		{ID: "site", Name: "Site", Type: domain.PropertyTypeURL},
	})
}

func makePage(id string, values map[string]domain.Value) domain.Page {
	return domain.Page{
		ID:     id,
		Title:  id,
		Values: domain.NewPropertyValuesFromMap(values),
	}
}

func mustMakeFilter(t *testing.T, vf ViewFilter, sch *Schema) Filter {
	t.Helper()
	f, err := MakeFilter(vf, sch.PropertyByID(vf.PropertyID), time.UTC)
	require.NoError(t, err)
	return f
}

func TestTextFilters(t *testing.T) {
	sch := testSchema()
	page := makePage("p1", map[string]domain.Value{"title": domain.String("Grocery Run")})

	t.Run("equals is case-insensitive", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "title", Operator: OperatorEquals, Value: domain.String("grocery run")}, sch)
		assert.True(t, f.FilterPage(page))
	})
	t.Run("contains", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "title", Operator: OperatorContains, Value: domain.String("ROC")}, sch)
		assert.True(t, f.FilterPage(page))
	})
	t.Run("starts_with and ends_with", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "title", Operator: OperatorStartsWith, Value: domain.String("gro")}, sch)
		assert.True(t, f.FilterPage(page))
		f = mustMakeFilter(t, ViewFilter{PropertyID: "title", Operator: OperatorEndsWith, Value: domain.String("walk")}, sch)
		assert.False(t, f.FilterPage(page))
	})
	t.Run("does_not_equal passes missing values", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "title", Operator: OperatorDoesNotEqual, Value: domain.String("x")}, sch)
		assert.True(t, f.FilterPage(makePage("p2", nil)))
	})
	t.Run("url filters as text", func(t *testing.T) {
		withURL := makePage("p3", map[string]domain.Value{"site": domain.String("https://example.org")})
		f := mustMakeFilter(t, ViewFilter{PropertyID: "site", Operator: OperatorContains, Value: domain.String("example")}, sch)
		assert.True(t, f.FilterPage(withURL))
	})
	t.Run("non-string comparand fails closed", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "title", Operator: OperatorEquals, Value: domain.Float64(5)}, sch)
		assert.IsType(t, FilterNone{}, f)
		assert.False(t, f.FilterPage(page))
	})
}

func TestNumberFilters(t *testing.T) {
	sch := testSchema()
	page := makePage("p1", map[string]domain.Value{"price": domain.Float64(10)})

	t.Run("comparisons", func(t *testing.T) {
		for _, tc := range []struct {
			op    Operator
			value float64
			want  bool
		}{
			{OperatorEquals, 10, true},
			{OperatorDoesNotEqual, 10, false},
			{OperatorGreaterThan, 9, true},
			{OperatorGreaterThan, 10, false},
			{OperatorLessThan, 11, true},
			{OperatorGreaterThanOrEqualTo, 10, true},
			{OperatorLessThanOrEqualTo, 9, false},
		} {
			f := mustMakeFilter(t, ViewFilter{PropertyID: "price", Operator: tc.op, Value: domain.Float64(tc.value)}, sch)
			assert.Equal(t, tc.want, f.FilterPage(page), "%s %v", tc.op, tc.value)
		}
	})
	t.Run("numeric string cell coerces", func(t *testing.T) {
		stringCell := makePage("p2", map[string]domain.Value{"price": domain.String("10")})
		f := mustMakeFilter(t, ViewFilter{PropertyID: "price", Operator: OperatorEquals, Value: domain.Float64(10)}, sch)
		assert.True(t, f.FilterPage(stringCell))
	})
	t.Run("numeric string comparand coerces", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "price", Operator: OperatorGreaterThan, Value: domain.String("5")}, sch)
		assert.True(t, f.FilterPage(page))
	})
	t.Run("uncoercible comparand matches nothing", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "price", Operator: OperatorEquals, Value: domain.String("banana")}, sch)
		assert.IsType(t, FilterNone{}, f)
		assert.False(t, f.FilterPage(page))
	})
	t.Run("missing cell never matches a comparison", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "price", Operator: OperatorLessThan, Value: domain.Float64(100)}, sch)
		assert.False(t, f.FilterPage(makePage("p3", nil)))
	})
}

func TestDateFilters(t *testing.T) {
	sch := testSchema()
	morning := makePage("p1", map[string]domain.Value{"due": domain.String("2024-05-01T08:00:00Z")})
	evening := makePage("p2", map[string]domain.Value{"due": domain.String("2024-05-01T22:30:00Z")})
	nextDay := makePage("p3", map[string]domain.Value{"due": domain.String("2024-05-02")})

	t.Run("equals compares calendar days, not instants", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "due", Operator: OperatorEquals, Value: domain.String("2024-05-01")}, sch)
		assert.True(t, f.FilterPage(morning))
		assert.True(t, f.FilterPage(evening))
		assert.False(t, f.FilterPage(nextDay))
	})
	t.Run("before excludes the day itself", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "due", Operator: OperatorBefore, Value: domain.String("2024-05-02")}, sch)
		assert.True(t, f.FilterPage(evening))
		assert.False(t, f.FilterPage(nextDay))
	})
	t.Run("on_or_after includes the day", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "due", Operator: OperatorOnOrAfter, Value: domain.String("2024-05-01")}, sch)
		assert.True(t, f.FilterPage(morning))
		assert.True(t, f.FilterPage(nextDay))
	})
	t.Run("unix timestamp cell works", func(t *testing.T) {
		ts := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC).Unix()
		page := makePage("p4", map[string]domain.Value{"due": domain.Int64(ts)})
		f := mustMakeFilter(t, ViewFilter{PropertyID: "due", Operator: OperatorEquals, Value: domain.String("2024-05-01")}, sch)
		assert.True(t, f.FilterPage(page))
	})
	t.Run("unparseable comparand matches nothing", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "due", Operator: OperatorAfter, Value: domain.String("not a date")}, sch)
		assert.IsType(t, FilterNone{}, f)
	})
}

func TestSelectFilters(t *testing.T) {
	sch := testSchema()
	open := makePage("p1", map[string]domain.Value{"status": domain.String("open")})
	done := makePage("p2", map[string]domain.Value{"status": domain.String("done")})
	blank := makePage("p3", nil)

	t.Run("is matches option id", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "status", Operator: OperatorIs, Value: domain.String("open")}, sch)
		assert.True(t, f.FilterPage(open))
		assert.False(t, f.FilterPage(done))
		assert.False(t, f.FilterPage(blank))
	})
	t.Run("is_not passes blank cells", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "status", Operator: OperatorIsNot, Value: domain.String("open")}, sch)
		assert.False(t, f.FilterPage(open))
		assert.True(t, f.FilterPage(done))
		assert.True(t, f.FilterPage(blank))
	})
}

func TestListFilters(t *testing.T) {
	sch := testSchema()
	tagged := makePage("p1", map[string]domain.Value{"tags": domain.StringList([]string{"red", "blue"})})
	scalar := makePage("p2", map[string]domain.Value{"tags": domain.String("red")})

	t.Run("contains is membership", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "tags", Operator: OperatorContains, Value: domain.String("red")}, sch)
		assert.True(t, f.FilterPage(tagged))
	})
	t.Run("scalar cell acts as single-element list", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "tags", Operator: OperatorContains, Value: domain.String("red")}, sch)
		assert.True(t, f.FilterPage(scalar))
	})
	t.Run("does_not_contain", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "tags", Operator: OperatorDoesNotContain, Value: domain.String("green")}, sch)
		assert.True(t, f.FilterPage(tagged))
	})
}

func TestCheckboxFilters(t *testing.T) {
	sch := testSchema()
	checked := makePage("p1", map[string]domain.Value{"paid": domain.Bool(true)})
	unchecked := makePage("p2", map[string]domain.Value{"paid": domain.Bool(false)})
	missing := makePage("p3", nil)

	t.Run("is_checked", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "paid", Operator: OperatorIsChecked}, sch)
		assert.True(t, f.FilterPage(checked))
		assert.False(t, f.FilterPage(unchecked))
		assert.False(t, f.FilterPage(missing))
	})
	t.Run("is_not_checked passes missing cells", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "paid", Operator: OperatorIsNotChecked}, sch)
		assert.False(t, f.FilterPage(checked))
		assert.True(t, f.FilterPage(unchecked))
		assert.True(t, f.FilterPage(missing))
	})
}

func TestEmptyFilters(t *testing.T) {
	sch := testSchema()

	t.Run("is_empty matches none, empty string and empty list", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "title", Operator: OperatorIsEmpty}, sch)
		assert.True(t, f.FilterPage(makePage("p1", nil)))
		assert.True(t, f.FilterPage(makePage("p2", map[string]domain.Value{"title": domain.String("")})))
		assert.False(t, f.FilterPage(makePage("p3", map[string]domain.Value{"title": domain.String("x")})))
	})
	t.Run("zero is not empty", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "price", Operator: OperatorIsEmpty}, sch)
		assert.False(t, f.FilterPage(makePage("p1", map[string]domain.Value{"price": domain.Float64(0)})))
	})
	t.Run("false is not empty", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "paid", Operator: OperatorIsEmpty}, sch)
		assert.False(t, f.FilterPage(makePage("p1", map[string]domain.Value{"paid": domain.Bool(false)})))
	})
}

func TestStaleProperty(t *testing.T) {
	sch := testSchema()

	t.Run("binary operator on deleted property matches nothing", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "gone", Operator: OperatorEquals, Value: domain.String("x")}, sch)
		assert.IsType(t, FilterNone{}, f)
	})
	t.Run("emptiness operators stay meaningful", func(t *testing.T) {
		f := mustMakeFilter(t, ViewFilter{PropertyID: "gone", Operator: OperatorIsEmpty}, sch)
		assert.True(t, f.FilterPage(makePage("p1", nil)))
	})
}

func TestOperatorTypeMismatch(t *testing.T) {
	sch := testSchema()
	_, err := MakeFilter(ViewFilter{PropertyID: "price", Operator: OperatorContains, Value: domain.String("1")}, sch.PropertyByID("price"), time.UTC)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOperatorNotSupported)
}

func TestMakeFilters(t *testing.T) {
	sch := testSchema()
	pages := []domain.Page{
		makePage("cheap-open", map[string]domain.Value{"price": domain.Float64(5), "status": domain.String("open")}),
		makePage("cheap-done", map[string]domain.Value{"price": domain.Float64(5), "status": domain.String("done")}),
		makePage("dear-open", map[string]domain.Value{"price": domain.Float64(50), "status": domain.String("open")}),
	}
	match := func(f Filter) []string {
		var ids []string
		for _, p := range pages {
			if f.FilterPage(p) {
				ids = append(ids, p.ID)
			}
		}
		return ids
	}

	t.Run("empty group passes everything", func(t *testing.T) {
		f, err := MakeFilters(FilterGroup{}, sch, time.UTC)
		require.NoError(t, err)
		assert.Len(t, match(f), 3)
	})
	t.Run("AND intersects", func(t *testing.T) {
		f, err := MakeFilters(FilterGroup{Condition: ConditionAnd, Filters: []ViewFilter{
			{PropertyID: "price", Operator: OperatorLessThan, Value: domain.Float64(10)},
			{PropertyID: "status", Operator: OperatorIs, Value: domain.String("open")},
		}}, sch, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, []string{"cheap-open"}, match(f))
	})
	t.Run("OR unions", func(t *testing.T) {
		f, err := MakeFilters(FilterGroup{Condition: ConditionOr, Filters: []ViewFilter{
			{PropertyID: "price", Operator: OperatorGreaterThan, Value: domain.Float64(10)},
			{PropertyID: "status", Operator: OperatorIs, Value: domain.String("done")},
		}}, sch, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, []string{"cheap-done", "dear-open"}, match(f))
	})
	t.Run("unknown condition errors", func(t *testing.T) {
		_, err := MakeFilters(FilterGroup{Condition: "XOR"}, sch, time.UTC)
		assert.ErrorIs(t, err, ErrUnexpectedCondition)
	})
}

func TestFiltersString(t *testing.T) {
	sch := testSchema()
	filters, err := NewFilters(Query{
		Filters: FilterGroup{Condition: ConditionAnd, Filters: []ViewFilter{
			{PropertyID: "price", Operator: OperatorGreaterThan, Value: domain.Float64(1)},
		}},
		Sorts: []Sort{{PropertyID: "title", Direction: DirectionAscending}},
	}, sch, time.UTC)
	require.NoError(t, err)
	assert.True(t, filters.HasOrders())
	assert.Contains(t, filters.String(), "WHERE")
	assert.Contains(t, filters.String(), "ORDER BY")
}

func TestFiltersWithoutSorts(t *testing.T) {
	sch := testSchema()
	filters, err := NewFilters(Query{}, sch, time.UTC)
	require.NoError(t, err)
	assert.False(t, filters.HasOrders())
	assert.Zero(t, filters.Compare(Record{}, Record{}))
	assert.True(t, filters.Filter(Record{Page: makePage("p1", nil)}))
}
