package storage

import (
	"context"
	"errors"
)

// TodosKey is the single key the todo list snapshot is stored under.
const TodosKey = "todos"

var (
	ErrEmptyKey          = errors.New("storage: empty key")
	ErrMalformedSnapshot = errors.New("storage: malformed todos snapshot")
)

// Store is a string key-value store. Get reports ok=false for an absent key.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
