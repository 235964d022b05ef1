// Package routecache persists route table snapshots so a restarted process
// can skip re-reading its declarative route source.
//
// A Cache adapts a byte-oriented Store to the routes.Cache interface,
// encoding tables as YAML with declaration order preserved. Three stores
// are provided:
//
//	routecache.NewMemory()                  // process-local
//	routecache.NewFile("/var/cache/routes") // one file per key
//	routecache.NewRedis(client, "app:")     // shared across processes
//
// Entries never expire; Delete is the only invalidation.
//
//	cache := routecache.New(routecache.NewFile(dir))
//	m, err := routes.New(ctx, source, cache)
package routecache
