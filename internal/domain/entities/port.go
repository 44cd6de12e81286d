package entities

import "context"

// Repository port: CRUD over named collections.
// Reads degrade to empty results; only Update reports ErrNotFound.
type Repository interface {
	List(ctx context.Context, c Collection) ([]Record, error)
	Filter(ctx context.Context, c Collection, criteria map[string]any) ([]Record, error)
	Get(ctx context.Context, c Collection, id string) (Record, error)
	Create(ctx context.Context, c Collection, data Record) (Record, error)
	BulkCreate(ctx context.Context, c Collection, data []Record) ([]Record, error)
	Update(ctx context.Context, c Collection, id string, partial Record) (Record, error)
	Delete(ctx context.Context, c Collection, id string) error
}

// Backend port: a flat key/value space standing in for browser local storage.
// Values are opaque serialized bytes.
type Backend interface {
	GetItem(ctx context.Context, key string) ([]byte, bool, error)
	SetItem(ctx context.Context, key string, value []byte) error
	// SetItems writes every entry or none of them.
	SetItems(ctx context.Context, items map[string][]byte) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Singletons port: one record stored under its own key.
type Singletons interface {
	GetSingleton(ctx context.Context, key string) (Record, error)
	MergeSingleton(ctx context.Context, key string, partial Record, init func() Record) (Record, error)
	RemoveSingleton(ctx context.Context, key string) error
}
