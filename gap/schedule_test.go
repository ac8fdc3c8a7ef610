package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_keyIgnoresTaskOrder(t *testing.T) {
	a := Schedule{Machine: 0, Tasks: []int{3, 1, 2}}
	b := Schedule{Machine: 0, Tasks: []int{1, 2, 3}}
	assert.Equal(t, a.key(), b.key())
}

func TestSchedule_keyDistinguishesMachine(t *testing.T) {
	a := Schedule{Machine: 0, Tasks: []int{1, 2}}
	b := Schedule{Machine: 1, Tasks: []int{1, 2}}
	assert.NotEqual(t, a.key(), b.key())
}

func TestSchedule_has(t *testing.T) {
	s := Schedule{Machine: 0, Tasks: []int{1, 4, 7}}
	assert.True(t, s.has(4))
	assert.False(t, s.has(5))
}

func TestSchedule_feasible(t *testing.T) {
	inst := smallInstanceA(t)
	assert.True(t, Schedule{Machine: 0, Tasks: []int{1, 3}}.feasible(inst))
	assert.False(t, Schedule{Machine: 0, Tasks: []int{0, 1, 2, 4, 5, 6}}.feasible(inst))
}

func TestAppendInt_negativeAndZero(t *testing.T) {
	assert.Equal(t, "0", string(appendInt(nil, 0)))
	assert.Equal(t, "-12", string(appendInt(nil, -12)))
	assert.Equal(t, "34", string(appendInt(nil, 34)))
}
