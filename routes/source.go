package routes

import "context"

// CacheKey is the fixed key under which the whole route table is cached.
const CacheKey = "gv_routes"

// Source yields a declarative route table. Implementations report a
// missing or malformed source as *ConfigError.
type Source interface {
	Routes() (*Table, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() (*Table, error)

// Routes calls f.
func (f SourceFunc) Routes() (*Table, error) {
	return f()
}

// Document is an in-memory declarative route document.
type Document []byte

// Routes decodes the document.
func (d Document) Routes() (*Table, error) {
	return DecodeDocument(d)
}

// Cache stores snapshots of a route table. Entries carry no TTL; they are
// invalidated only through Delete.
type Cache interface {
	Exists(ctx context.Context, key string) (bool, error)
	Load(ctx context.Context, key string) (*Table, error)
	Save(ctx context.Context, key string, table *Table) error
	Delete(ctx context.Context, key string) error
}
