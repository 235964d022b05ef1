package routes

import (
	"context"
	"sync"
)

// memoryCache is an in-process Cache used by the package tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*Table
	saves   int

	existsErr error
	saveErr   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*Table)}
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.existsErr != nil {
		return false, c.existsErr
	}

	_, ok := c.entries[key]
	return ok, nil
}

func (c *memoryCache) Load(_ context.Context, key string) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries[key].Clone(), nil
}

func (c *memoryCache) Save(_ context.Context, key string, table *Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.saveErr != nil {
		return c.saveErr
	}

	c.saves++
	c.entries[key] = table.Clone()

	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// fakeRequest records the parameters written by GetRoute.
type fakeRequest struct {
	method string
	params map[string]string
}

func newFakeRequest(method string) *fakeRequest {
	return &fakeRequest{method: method, params: make(map[string]string)}
}

func (r *fakeRequest) RequestType() string {
	return r.method
}

func (r *fakeRequest) SetParameter(name, value string) {
	r.params[name] = value
}

const testDocument = `
routes:
  opcache:
    method: GET
    uri: /settings/opcache
    action: Settings->opcache
  example:
    method: GET
    uri: /examples/qwe/:id:
    action: Examples->qwe
  example-post:
    method: POST
    uri: /examples/qwe/:id:/:slug:
    action: Examples->store
`
