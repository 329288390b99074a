package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// PropertyType is the column type of a database property. The type of a
// property decides how stored values are interpreted: the value itself is
// stored loosely and gains meaning only through the sibling property.
type PropertyType string

const (
	PropertyTypeText        PropertyType = "text"
	PropertyTypeNumber      PropertyType = "number"
	PropertyTypeSelect      PropertyType = "select"
	PropertyTypeMultiSelect PropertyType = "multiSelect"
	PropertyTypeDate        PropertyType = "date"
	PropertyTypeCheckbox    PropertyType = "checkbox"
	PropertyTypeURL         PropertyType = "url"
	PropertyTypeEmail       PropertyType = "email"
	PropertyTypePhone       PropertyType = "phone"
	PropertyTypeFiles       PropertyType = "files"
	PropertyTypePerson      PropertyType = "person"
	PropertyTypeFormula     PropertyType = "formula"
	PropertyTypeRelation    PropertyType = "relation"
	PropertyTypeRollup      PropertyType = "rollup"
	PropertyTypeProgress    PropertyType = "progress"

	PropertyTypeCreatedTime    PropertyType = "createdTime"
	PropertyTypeCreatedBy      PropertyType = "createdBy"
	PropertyTypeLastEditedTime PropertyType = "lastEditedTime"
	PropertyTypeLastEditedBy   PropertyType = "lastEditedBy"
)

var propertyTypes = map[PropertyType]struct{}{
	PropertyTypeText:           {},
	PropertyTypeNumber:         {},
	PropertyTypeSelect:         {},
	PropertyTypeMultiSelect:    {},
	PropertyTypeDate:           {},
	PropertyTypeCheckbox:       {},
	PropertyTypeURL:            {},
	PropertyTypeEmail:          {},
	PropertyTypePhone:          {},
	PropertyTypeFiles:          {},
	PropertyTypePerson:         {},
	PropertyTypeFormula:        {},
	PropertyTypeRelation:       {},
	PropertyTypeRollup:         {},
	PropertyTypeProgress:       {},
	PropertyTypeCreatedTime:    {},
	PropertyTypeCreatedBy:      {},
	PropertyTypeLastEditedTime: {},
	PropertyTypeLastEditedBy:   {},
}

func (t PropertyType) IsValid() bool {
	_, ok := propertyTypes[t]
	return ok
}

// IsTextLike reports whether values of this type filter and sort as free
// text. URL, email and phone share the text operator set.
func (t PropertyType) IsTextLike() bool {
	switch t {
	case PropertyTypeText, PropertyTypeURL, PropertyTypeEmail, PropertyTypePhone,
		PropertyTypeCreatedBy, PropertyTypeLastEditedBy:
		return true
	}
	return false
}

// IsMultiValued reports whether the stored value is a list of ids.
func (t PropertyType) IsMultiValued() bool {
	switch t {
	case PropertyTypeMultiSelect, PropertyTypeFiles, PropertyTypePerson, PropertyTypeRelation:
		return true
	}
	return false
}

// IsDateLike reports whether values compare as calendar dates.
func (t PropertyType) IsDateLike() bool {
	switch t {
	case PropertyTypeDate, PropertyTypeCreatedTime, PropertyTypeLastEditedTime:
		return true
	}
	return false
}

// RollupFunction is the aggregation applied by a rollup property over the
// values collected from related pages.
type RollupFunction string

const (
	RollupCount        RollupFunction = "count"
	RollupSum          RollupFunction = "sum"
	RollupAvg          RollupFunction = "avg"
	RollupMin          RollupFunction = "min"
	RollupMax          RollupFunction = "max"
	RollupShowOriginal RollupFunction = "show_original"
)

func (f RollupFunction) IsValid() bool {
	switch f {
	case RollupCount, RollupSum, RollupAvg, RollupMin, RollupMax, RollupShowOriginal:
		return true
	}
	return false
}

// PropertyOption is one selectable option of a select or multi-select
// property. Stored values reference options by id, never by name.
type PropertyOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Property is a column definition on a database parent page. The id is the
// stable key: renaming changes Name only, and deleting a property leaves
// stored values orphaned rather than purging them.
type Property struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type PropertyType `json:"type"`

	Options []PropertyOption `json:"options,omitempty"`

	Formula string `json:"formula,omitempty"`

	RelationTo string `json:"relationTo,omitempty"`

	RollupRelation string         `json:"rollupRelation,omitempty"`
	RollupProperty string         `json:"rollupProperty,omitempty"`
	RollupFunction RollupFunction `json:"rollupFunction,omitempty"`

	Max           float64 `json:"max,omitempty"`
	ProgressColor string  `json:"progressColor,omitempty"`
}

// Validate reports every config problem at once, so the view controls can
// surface all of them after an edit.
func (p Property) Validate() error {
	var result *multierror.Error
	if p.ID == "" {
		result = multierror.Append(result, fmt.Errorf("property id is required"))
	}
	if p.Name == "" {
		result = multierror.Append(result, fmt.Errorf("property name is required"))
	}
	if !p.Type.IsValid() {
		result = multierror.Append(result, fmt.Errorf("unknown property type %q", p.Type))
	}
	switch p.Type {
	case PropertyTypeFormula:
		if p.Formula == "" {
			result = multierror.Append(result, fmt.Errorf("formula property %q requires an expression", p.Name))
		}
	case PropertyTypeRelation:
		if p.RelationTo == "" {
			result = multierror.Append(result, fmt.Errorf("relation property %q requires a target page", p.Name))
		}
	case PropertyTypeRollup:
		if p.RollupRelation == "" {
			result = multierror.Append(result, fmt.Errorf("rollup property %q requires a relation", p.Name))
		}
		if p.RollupProperty == "" {
			result = multierror.Append(result, fmt.Errorf("rollup property %q requires a target property", p.Name))
		}
		if !p.RollupFunction.IsValid() {
			result = multierror.Append(result, fmt.Errorf("rollup property %q has unknown function %q", p.Name, p.RollupFunction))
		}
	case PropertyTypeSelect, PropertyTypeMultiSelect:
		seen := make(map[string]struct{}, len(p.Options))
		for _, opt := range p.Options {
			if opt.ID == "" {
				result = multierror.Append(result, fmt.Errorf("property %q has an option without id", p.Name))
				continue
			}
			if _, ok := seen[opt.ID]; ok {
				result = multierror.Append(result, fmt.Errorf("property %q has duplicate option id %q", p.Name, opt.ID))
			}
			seen[opt.ID] = struct{}{}
		}
	case PropertyTypeProgress:
		if p.Max < 0 {
			result = multierror.Append(result, fmt.Errorf("progress property %q has negative max", p.Name))
		}
	}
	return result.ErrorOrNil()
}

// OptionByID resolves a stored option id; nil when the option was deleted.
func (p Property) OptionByID(id string) *PropertyOption {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}
