package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	task, err := ParseTask("AS3B*120")
	require.NoError(t, err)
	assert.Equal(t, Task{Name: "AS3B", Remaining: 120}, task)
}

func TestParseTask_Malformed(t *testing.T) {
	for _, token := range []string{
		"AS3B",      // no delimiter
		"*120",      // empty name
		"AS3B*",     // empty quantity
		"AS3B*abc",  // not numeric
		"AS3B*0",    // zero
		"AS3B*-5",   // negative
		"AS3B*12.5", // fractional
		"",
	} {
		_, err := ParseTask(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestTaskToken_RoundTrip(t *testing.T) {
	task := Task{Name: "樹德4尺-L", Remaining: 7}
	parsed, err := ParseTask(task.Token())
	require.NoError(t, err)
	assert.Equal(t, task, parsed)
}

func TestEncodeTasks_PreservesOrder(t *testing.T) {
	tokens := EncodeTasks([]Task{
		{Name: "UG3A-L", Remaining: 3},
		{Name: "UG3A-R", Remaining: 3},
	})
	assert.Equal(t, []string{"UG3A-L*3", "UG3A-R*3"}, tokens)
}
