package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	one := maps.All(map[string]int{"a": 1})
	two := slices.All([]string{"x", "y"})

	seq := Concat2(one, maps.All(map[string]int{"b": 2}))
	got := map[string]int{}
	for key, value := range seq {
		got[key] = value
	}
	assert.Equal(map[string]int{"a": 1, "b": 2}, got)

	var keys []int
	for key := range Concat2(two, two) {
		keys = append(keys, key)
	}
	assert.Equal([]int{0, 1, 0, 1}, keys)

	// Stopping early.
	count := 0
	for range Concat2(two, two) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(3, count)

	count = 0
	for range Concat2[string, int]() {
		count++
	}
	assert.Equal(0, count)
}
