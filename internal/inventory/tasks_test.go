package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

func TestAddPair(t *testing.T) {
	queue := []models.Task{{Name: "UG3A-L", Remaining: 5}}

	out, err := AddPair(queue, "AK3B", 120)
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, models.Task{Name: "AK3B-L", Remaining: 120}, out[1])
	assert.Equal(t, models.Task{Name: "AK3B-R", Remaining: 120}, out[2])

	// Input untouched.
	assert.Len(t, queue, 1)
}

func TestAddPair_RejectsNonPositiveQuantity(t *testing.T) {
	_, err := AddPair(nil, "AK3B", 0)
	assert.Error(t, err)
	_, err = AddPair(nil, "AK3B", -3)
	assert.Error(t, err)
}

func TestComplete_PartialRewritesInPlace(t *testing.T) {
	queue := []models.Task{
		{Name: "UG3A-L", Remaining: 10},
		{Name: "AK3B-L", Remaining: 120},
	}

	out, removed, remaining, overshoot, err := Complete(queue, 1, 50)
	require.NoError(t, err)

	assert.False(t, removed)
	assert.Equal(t, 70, remaining)
	assert.Zero(t, overshoot)
	require.Len(t, out, 2)
	assert.Equal(t, models.Task{Name: "AK3B-L", Remaining: 70}, out[1])
	assert.Equal(t, queue[0], out[0])

	// Input untouched.
	assert.Equal(t, 120, queue[1].Remaining)
}

func TestComplete_ExactRemovesTask(t *testing.T) {
	queue := []models.Task{{Name: "AK3B-L", Remaining: 120}}

	out, removed, remaining, overshoot, err := Complete(queue, 0, 120)
	require.NoError(t, err)

	assert.True(t, removed)
	assert.Zero(t, remaining)
	assert.Zero(t, overshoot)
	assert.Empty(t, out)
}

func TestComplete_OvershootIsAcceptedAndReported(t *testing.T) {
	queue := []models.Task{{Name: "AK3B-L", Remaining: 120}}

	out, removed, remaining, overshoot, err := Complete(queue, 0, 150)
	require.NoError(t, err)

	assert.True(t, removed)
	assert.Zero(t, remaining)
	assert.Equal(t, 30, overshoot)
	assert.Empty(t, out)
}

func TestComplete_Errors(t *testing.T) {
	queue := []models.Task{{Name: "AK3B-L", Remaining: 120}}

	_, _, _, _, err := Complete(queue, 3, 10)
	assert.Error(t, err)
	_, _, _, _, err = Complete(queue, -1, 10)
	assert.Error(t, err)
	_, _, _, _, err = Complete(queue, 0, 0)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	queue := []models.Task{
		{Name: "UG3A-L", Remaining: 1},
		{Name: "UG3A-R", Remaining: 2},
		{Name: "AK3B-L", Remaining: 3},
	}

	out, err := Delete(queue, 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "UG3A-L", out[0].Name)
	assert.Equal(t, "AK3B-L", out[1].Name)

	_, err = Delete(queue, 5)
	assert.Error(t, err)
}

func TestMoveToFront(t *testing.T) {
	queue := []models.Task{
		{Name: "UG3A-L", Remaining: 1},
		{Name: "UG3A-R", Remaining: 2},
		{Name: "AK3B-L", Remaining: 3},
	}

	out, err := MoveToFront(queue, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Task{
		{Name: "AK3B-L", Remaining: 3},
		{Name: "UG3A-L", Remaining: 1},
		{Name: "UG3A-R", Remaining: 2},
	}, out)

	front, err := MoveToFront(queue, 0)
	require.NoError(t, err)
	assert.Equal(t, queue, front)

	_, err = MoveToFront(queue, 3)
	assert.Error(t, err)
}
