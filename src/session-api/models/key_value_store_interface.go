package models

import "context"

type IKeyValueStore interface {
	// Get returns found=false, with a nil error, when the key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
