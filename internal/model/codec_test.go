package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tasks := []StoredTask{
		{ID: "65f1c0ffee0000000000beef", Task: Task{Title: "New Task", Description: "This is a test task.", Status: StatusPending}},
		{ID: "7d9f3a52-8d5e-4b7e-9a3c-2f1e0b6c4d21", Task: Task{Title: "Юникод", Description: "описание \"в кавычках\"\n", Status: StatusInProgress}},
		{ID: "x", Task: Task{Title: "t", Description: "d", Status: StatusCompleted}},
	}

	for _, want := range tasks {
		encoded, err := EncodeTask(want)
		require.NoError(t, err)

		got, err := DecodeTask(encoded)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncodeTask_Fields(t *testing.T) {
	encoded, err := EncodeTask(StoredTask{
		ID:   "abc",
		Task: Task{Title: "T", Description: "D", Status: StatusInProgress},
	})
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(encoded), &raw))
	assert.Equal(t, map[string]interface{}{
		"id":          "abc",
		"title":       "T",
		"description": "D",
		"status":      "in_progress",
	}, raw)
}

func TestDecodeTask_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "{broken"},
		{name: "missing id", input: `{"title":"T","description":"D","status":"pending"}`},
		{name: "unknown status", input: `{"id":"1","title":"T","description":"D","status":"done"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTask(tt.input)
			assert.Error(t, err)
		})
	}
}
