package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
)

func TestOperatorsForType(t *testing.T) {
	t.Run("text set", func(t *testing.T) {
		infos := OperatorsForType(domain.PropertyTypeText)
		require.NotEmpty(t, infos)
		assert.Equal(t, OperatorEquals, infos[0].Value)
		assert.Equal(t, "Equals", infos[0].Label)
	})
	t.Run("url shares the text set", func(t *testing.T) {
		assert.Equal(t, OperatorsForType(domain.PropertyTypeText), OperatorsForType(domain.PropertyTypeURL))
	})
	t.Run("checkbox has no emptiness operators", func(t *testing.T) {
		infos := OperatorsForType(domain.PropertyTypeCheckbox)
		require.Len(t, infos, 2)
		assert.Equal(t, OperatorIsChecked, infos[0].Value)
	})
	t.Run("computed columns take no filters", func(t *testing.T) {
		assert.Nil(t, OperatorsForType(domain.PropertyTypeFormula))
		assert.Nil(t, OperatorsForType(domain.PropertyTypeRollup))
	})
}

func TestOperatorSupported(t *testing.T) {
	assert.True(t, OperatorSupported(domain.PropertyTypeNumber, OperatorGreaterThan))
	assert.False(t, OperatorSupported(domain.PropertyTypeNumber, OperatorContains))
	assert.True(t, OperatorSupported(domain.PropertyTypeDate, OperatorOnOrBefore))
	assert.False(t, OperatorSupported(domain.PropertyTypeCheckbox, OperatorIsEmpty))
}

func TestOperatorIsUnary(t *testing.T) {
	assert.True(t, OperatorIsEmpty.IsUnary())
	assert.True(t, OperatorIsNotChecked.IsUnary())
	assert.False(t, OperatorEquals.IsUnary())
}

func TestOperatorLabel(t *testing.T) {
	assert.Equal(t, "On or before", OperatorOnOrBefore.Label())
	assert.Equal(t, "mystery", Operator("mystery").Label())
}
