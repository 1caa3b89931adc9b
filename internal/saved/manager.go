// Package saved tracks the viewer's saved products. Toggles apply
// optimistically and roll back when the backend call fails or times out.
package saved

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/example/storefront-sdk/internal/storage"
)

const storeKey = "saved_products"

// Toggler is the backend side of the save/unsave toggle.
type Toggler interface {
	SaveProduct(ctx context.Context, productID string) error
	UnsaveProduct(ctx context.Context, productID string) error
}

// Manager holds the saved set in memory and mirrors it to durable local
// storage so it survives reloads.
type Manager struct {
	mu    sync.Mutex
	store *storage.FileStore
	api   Toggler
	saved map[string]bool
}

// NewManager loads the persisted saved list from store.
func NewManager(store *storage.FileStore, api Toggler) (*Manager, error) {
	m := &Manager{
		store: store,
		api:   api,
		saved: make(map[string]bool),
	}

	var ids []string
	if _, err := store.Get(storeKey, &ids); err != nil {
		return nil, err
	}
	for _, id := range ids {
		m.saved[id] = true
	}
	return m, nil
}

// IsSaved reports whether the product is currently saved.
func (m *Manager) IsSaved(productID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[productID]
}

// List returns the saved product ids in stable order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.saved))
	for id := range m.saved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Toggle flips the saved state optimistically, then confirms with the
// backend. On failure the local state reverts and the error is returned;
// the reported bool is the state after the call settles.
func (m *Manager) Toggle(ctx context.Context, productID string) (bool, error) {
	wasSaved := m.IsSaved(productID)
	m.set(productID, !wasSaved)

	var err error
	if wasSaved {
		err = m.api.UnsaveProduct(ctx, productID)
	} else {
		err = m.api.SaveProduct(ctx, productID)
	}
	if err != nil {
		m.set(productID, wasSaved)
		log.Printf("[Saved] Toggle for product %s reverted: %v", productID, err)
		return wasSaved, err
	}
	return !wasSaved, nil
}

// set updates memory and persists the list. Persistence failures are
// logged, not fatal: the in-memory state stays authoritative.
func (m *Manager) set(productID string, saved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if saved {
		m.saved[productID] = true
	} else {
		delete(m.saved, productID)
	}

	ids := make([]string, 0, len(m.saved))
	for id := range m.saved {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := m.store.Put(storeKey, ids); err != nil {
		log.Printf("[Saved] Failed to persist saved list: %v", err)
	}
}
