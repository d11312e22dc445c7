package commands

import (
	"errors"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/ports"
)

// AdapterFactory builds the adapter matching a supplier's adapter kind.
type AdapterFactory interface {
	New(s *supplier.Supplier) (ports.SupplierAdapter, error)
}

// AdapterCache keeps one adapter per supplier for the lifetime of the process. It is
// shared by job processing and tracking sync and is safe for concurrent use.
type AdapterCache struct {
	factory AdapterFactory

	mu       sync.RWMutex
	adapters map[kernel.UUID]ports.SupplierAdapter
}

func NewAdapterCache(factory AdapterFactory) *AdapterCache {
	return &AdapterCache{
		factory:  factory,
		adapters: make(map[kernel.UUID]ports.SupplierAdapter),
	}
}

// Get returns the cached adapter of a supplier, building it on first use.
func (c *AdapterCache) Get(s *supplier.Supplier) (ports.SupplierAdapter, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return c.GetOrLoad(s.ID(), func() (*supplier.Supplier, error) { return s, nil })
}

// GetOrLoad returns the cached adapter of supplierID. On a miss, load fetches the
// supplier and the factory builds the adapter; misses are serialized so every
// supplier gets exactly one adapter.
func (c *AdapterCache) GetOrLoad(supplierID kernel.UUID, load func() (*supplier.Supplier, error)) (ports.SupplierAdapter, error) {
	c.mu.RLock()
	adapter, ok := c.adapters[supplierID]
	c.mu.RUnlock()
	if ok {
		return adapter, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if adapter, ok = c.adapters[supplierID]; ok {
		return adapter, nil
	}

	s, err := load()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("supplier loader returned nil")
	}
	if adapter, err = c.factory.New(s); err != nil {
		return nil, err
	}
	c.adapters[supplierID] = adapter
	return adapter, nil
}

// Len returns the number of cached adapters.
func (c *AdapterCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.adapters)
}
