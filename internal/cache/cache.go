// Package cache - строковый key-value кэш перед хранилищем задач.
// Слой не задает TTL и не вытесняет записи: это политика самого бэкенда.
package cache

import (
	"context"
	"errors"
)

// ErrCacheUnavailable оборачивает любые сбои бэкенда кэша.
var ErrCacheUnavailable = errors.New("cache unavailable")

type Cache interface {
	// Get возвращает ok == false, если ключ пустой или отсутствует.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set ничего не делает, если пуст ключ или значение.
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KeySeparator разделяет префикс и идентификатор в ключе.
const KeySeparator = ":"

// Key строит ключ кэша для задачи. Без префикса ключом служит сам id.
func Key(prefix, id string) string {
	if id == "" {
		return ""
	}
	if prefix == "" {
		return id
	}
	return prefix + KeySeparator + id
}
