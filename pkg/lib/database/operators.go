package database

import (
	"github.com/samber/lo"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
)

// Operator is a filter comparison keyed to the property type it applies to.
// The persisted shape stores operators as these snake_case strings.
type Operator string

const (
	OperatorEquals               Operator = "equals"
	OperatorDoesNotEqual         Operator = "does_not_equal"
	OperatorContains             Operator = "contains"
	OperatorDoesNotContain       Operator = "does_not_contain"
	OperatorStartsWith           Operator = "starts_with"
	OperatorEndsWith             Operator = "ends_with"
	OperatorGreaterThan          Operator = "greater_than"
	OperatorLessThan             Operator = "less_than"
	OperatorGreaterThanOrEqualTo Operator = "greater_than_or_equal_to"
	OperatorLessThanOrEqualTo    Operator = "less_than_or_equal_to"
	OperatorIs                   Operator = "is"
	OperatorIsNot                Operator = "is_not"
	OperatorBefore               Operator = "before"
	OperatorAfter                Operator = "after"
	OperatorOnOrBefore           Operator = "on_or_before"
	OperatorOnOrAfter            Operator = "on_or_after"
	OperatorIsChecked            Operator = "is_checked"
	OperatorIsNotChecked         Operator = "is_not_checked"
	OperatorIsEmpty              Operator = "is_empty"
	OperatorIsNotEmpty           Operator = "is_not_empty"
)

// IsUnary reports whether the operator ignores the filter value.
func (op Operator) IsUnary() bool {
	switch op {
	case OperatorIsEmpty, OperatorIsNotEmpty, OperatorIsChecked, OperatorIsNotChecked:
		return true
	}
	return false
}

var operatorLabels = map[Operator]string{
	OperatorEquals:               "Equals",
	OperatorDoesNotEqual:         "Does not equal",
	OperatorContains:             "Contains",
	OperatorDoesNotContain:       "Does not contain",
	OperatorStartsWith:           "Starts with",
	OperatorEndsWith:             "Ends with",
	OperatorGreaterThan:          "Greater than",
	OperatorLessThan:             "Less than",
	OperatorGreaterThanOrEqualTo: "Greater than or equal to",
	OperatorLessThanOrEqualTo:    "Less than or equal to",
	OperatorIs:                   "Is",
	OperatorIsNot:                "Is not",
	OperatorBefore:               "Before",
	OperatorAfter:                "After",
	OperatorOnOrBefore:           "On or before",
	OperatorOnOrAfter:            "On or after",
	OperatorIsChecked:            "Checked",
	OperatorIsNotChecked:         "Unchecked",
	OperatorIsEmpty:              "Is empty",
	OperatorIsNotEmpty:           "Is not empty",
}

func (op Operator) Label() string {
	if label, ok := operatorLabels[op]; ok {
		return label
	}
	return string(op)
}

// OperatorInfo feeds the filter-operator dropdowns of the view controls.
type OperatorInfo struct {
	Value Operator `json:"value"`
	Label string   `json:"label"`
}

var (
	textOperators = []Operator{
		OperatorEquals, OperatorDoesNotEqual,
		OperatorContains, OperatorDoesNotContain,
		OperatorStartsWith, OperatorEndsWith,
		OperatorIsEmpty, OperatorIsNotEmpty,
	}
	numberOperators = []Operator{
		OperatorEquals, OperatorDoesNotEqual,
		OperatorGreaterThan, OperatorLessThan,
		OperatorGreaterThanOrEqualTo, OperatorLessThanOrEqualTo,
		OperatorIsEmpty, OperatorIsNotEmpty,
	}
	selectOperators = []Operator{
		OperatorIs, OperatorIsNot,
		OperatorContains, OperatorDoesNotContain,
		OperatorIsEmpty, OperatorIsNotEmpty,
	}
	dateOperators = []Operator{
		OperatorEquals, OperatorBefore, OperatorAfter,
		OperatorOnOrBefore, OperatorOnOrAfter,
		OperatorIsEmpty, OperatorIsNotEmpty,
	}
	checkboxOperators = []Operator{
		OperatorIsChecked, OperatorIsNotChecked,
	}
	listOperators = []Operator{
		OperatorContains, OperatorDoesNotContain,
		OperatorIsEmpty, OperatorIsNotEmpty,
	}
)

// OperatorsForType returns the operator set of a property type, in dropdown
// order. Formula and rollup columns are computed and take no filters.
func OperatorsForType(t domain.PropertyType) []OperatorInfo {
	var ops []Operator
	switch t {
	case domain.PropertyTypeText, domain.PropertyTypeURL, domain.PropertyTypeEmail,
		domain.PropertyTypePhone, domain.PropertyTypeCreatedBy, domain.PropertyTypeLastEditedBy:
		ops = textOperators
	case domain.PropertyTypeNumber, domain.PropertyTypeProgress:
		ops = numberOperators
	case domain.PropertyTypeSelect, domain.PropertyTypeMultiSelect:
		ops = selectOperators
	case domain.PropertyTypeDate, domain.PropertyTypeCreatedTime, domain.PropertyTypeLastEditedTime:
		ops = dateOperators
	case domain.PropertyTypeCheckbox:
		ops = checkboxOperators
	case domain.PropertyTypeRelation, domain.PropertyTypeFiles, domain.PropertyTypePerson:
		ops = listOperators
	case domain.PropertyTypeFormula, domain.PropertyTypeRollup:
		return nil
	default:
		return nil
	}
	return lo.Map(ops, func(op Operator, _ int) OperatorInfo {
		return OperatorInfo{Value: op, Label: op.Label()}
	})
}

// OperatorSupported reports whether op belongs to the operator set of t.
func OperatorSupported(t domain.PropertyType, op Operator) bool {
	return lo.ContainsBy(OperatorsForType(t), func(info OperatorInfo) bool {
		return info.Value == op
	})
}
