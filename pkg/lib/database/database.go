package database

import (
	"fmt"
	"time"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/pkg/lib/logging"
)

var log = logging.Logger("noteweb-database")

// Record is one row as delivered by the document store subscription.
type Record struct {
	Page domain.Page
}

func (r Record) Get(key string) domain.Value {
	return r.Page.Value(key)
}

// Query is the store-facing shape of a view: it compiles to a Filters that
// the record feed can evaluate per row.
type Query struct {
	Filters FilterGroup
	Sorts   []Sort
	Limit   int
	Offset  int
}

// Filters is a compiled query: a single filter object plus an optional
// order. It holds no mutable state and can be shared across goroutines.
type Filters struct {
	FilterObj Filter
	Order     Order
}

func NewFilters(q Query, sch *Schema, loc *time.Location) (*Filters, error) {
	filterObj, err := MakeFilters(q.Filters, sch, loc)
	if err != nil {
		return nil, err
	}
	filters := &Filters{FilterObj: filterObj}
	if order := MakeOrder(q.Sorts, sch, loc); order != nil {
		filters.Order = order
	}
	return filters, nil
}

func (f *Filters) Filter(r Record) bool {
	if f.FilterObj == nil {
		return true
	}
	return f.FilterObj.FilterPage(r.Page)
}

func (f *Filters) Compare(a, b Record) int {
	if f.Order == nil {
		return 0
	}
	return f.Order.Compare(a.Page, b.Page)
}

func (f *Filters) HasOrders() bool {
	return f.Order != nil
}

func (f *Filters) String() string {
	var filterString string
	var orderString string
	var separator string
	if f.FilterObj != nil {
		filterString = fmt.Sprintf("WHERE %v", f.FilterObj.String())
		separator = " "
	}
	if f.Order != nil {
		orderString = fmt.Sprintf("%sORDER BY %v", separator, f.Order.String())
	}
	return filterString + orderString
}
