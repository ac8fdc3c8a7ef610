package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstance_rejectsNegativeWeight(t *testing.T) {
	_, err := NewInstance(
		[][]float64{{-1}},
		[][]float64{{1}},
		[]float64{5},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInstanceInvalid)
}

func TestNewInstance_rejectsNegativeCapacity(t *testing.T) {
	_, err := NewInstance(
		[][]float64{{1}},
		[][]float64{{1}},
		[]float64{-1},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInstanceInvalid)
}

func TestNewInstance_rejectsRaggedRows(t *testing.T) {
	_, err := NewInstance(
		[][]float64{{1, 2}, {1}},
		[][]float64{{1, 2}, {1, 2}},
		[]float64{5, 5},
	)
	require.Error(t, err)
}

func smallInstanceA(t *testing.T) *Instance {
	t.Helper()
	inst, err := NewInstance(
		[][]float64{
			{4, 1, 2, 1, 4, 3, 8},
			{9, 9, 8, 1, 3, 8, 7},
		},
		[][]float64{
			{6, 9, 4, 2, 10, 3, 6},
			{4, 8, 9, 1, 7, 5, 4},
		},
		[]float64{11, 22},
	)
	require.NoError(t, err)
	return inst
}

func TestInstance_ScheduleProfitAndWeight(t *testing.T) {
	inst := smallInstanceA(t)
	assert.Equal(t, 6.0+2.0, inst.ScheduleProfit(0, []int{0, 3}))
	assert.Equal(t, 4.0+1.0, inst.ScheduleWeight(0, []int{0, 3}))
}
