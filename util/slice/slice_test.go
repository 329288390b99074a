package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPos(t *testing.T) {
	assert.Equal(t, 1, FindPos([]string{"a", "b", "c"}, "b"))
	assert.Equal(t, -1, FindPos([]string{"a"}, "z"))
}

func TestRemove(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, Remove([]string{"a", "b", "c"}, "b"))
	assert.Equal(t, []int{1, 3}, Remove([]int{1, 2, 2, 3}, 2))
}

func TestFilter(t *testing.T) {
	got := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, got)
}

func TestContainsAll(t *testing.T) {
	assert.True(t, ContainsAll([]string{"a", "b", "c"}, []string{"c", "a"}))
	assert.False(t, ContainsAll([]string{"a"}, []string{"a", "b"}))
	assert.True(t, ContainsAll([]string{"a"}, nil))
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash("x"), Hash("x"))
	assert.NotEqual(t, Hash("x"), Hash("y"))
}
