package model

import (
	"encoding/json"
	"fmt"
)

// EncodeTask - каноничное представление задачи для кэша (JSON, статус строкой).
func EncodeTask(t StoredTask) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode task %s: %w", t.ID, err)
	}
	return string(b), nil
}

func DecodeTask(s string) (StoredTask, error) {
	var t StoredTask
	if err := json.Unmarshal([]byte(s), &t); err != nil {
		return StoredTask{}, fmt.Errorf("decode task: %w", err)
	}
	if t.ID == "" {
		return StoredTask{}, fmt.Errorf("decode task: missing id")
	}
	if !t.Status.Valid() {
		return StoredTask{}, fmt.Errorf("decode task %s: unknown status %q", t.ID, t.Status)
	}
	return t, nil
}
