package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyTypeClassification(t *testing.T) {
	assert.True(t, PropertyTypeURL.IsTextLike())
	assert.True(t, PropertyTypeEmail.IsTextLike())
	assert.False(t, PropertyTypeNumber.IsTextLike())

	assert.True(t, PropertyTypeMultiSelect.IsMultiValued())
	assert.True(t, PropertyTypeRelation.IsMultiValued())
	assert.False(t, PropertyTypeSelect.IsMultiValued())

	assert.True(t, PropertyTypeCreatedTime.IsDateLike())
	assert.False(t, PropertyTypeText.IsDateLike())

	assert.True(t, PropertyTypeProgress.IsValid())
	assert.False(t, PropertyType("bogus").IsValid())
}

func TestPropertyValidate(t *testing.T) {
	t.Run("valid text property", func(t *testing.T) {
		p := Property{ID: "p1", Name: "Name", Type: PropertyTypeText}
		assert.NoError(t, p.Validate())
	})
	t.Run("missing id and name are both reported", func(t *testing.T) {
		p := Property{Type: PropertyTypeText}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id is required")
		assert.Contains(t, err.Error(), "name is required")
	})
	t.Run("formula requires expression", func(t *testing.T) {
		p := Property{ID: "p1", Name: "Total", Type: PropertyTypeFormula}
		assert.Error(t, p.Validate())
	})
	t.Run("rollup requires relation, property and function", func(t *testing.T) {
		p := Property{ID: "p1", Name: "Sum", Type: PropertyTypeRollup}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a relation")
		assert.Contains(t, err.Error(), "requires a target property")
		assert.Contains(t, err.Error(), "unknown function")
	})
	t.Run("duplicate option ids", func(t *testing.T) {
		p := Property{
			ID: "p1", Name: "Status", Type: PropertyTypeSelect,
			Options: []PropertyOption{{ID: "o1", Name: "A"}, {ID: "o1", Name: "B"}},
		}
		assert.Error(t, p.Validate())
	})
}

func TestOptionByID(t *testing.T) {
	p := Property{
		ID: "p1", Name: "Status", Type: PropertyTypeSelect,
		Options: []PropertyOption{{ID: "o1", Name: "Open"}, {ID: "o2", Name: "Done"}},
	}
	opt := p.OptionByID("o2")
	require.NotNil(t, opt)
	assert.Equal(t, "Done", opt.Name)
	assert.Nil(t, p.OptionByID("deleted"))
}
