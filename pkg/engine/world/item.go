package world

import (
	"github.com/zyedidia/generic/mapset"
)

// ItemSet is a set of item identifiers
type ItemSet = mapset.Set[string]

// Inventory holds collected items. Membership is by item identity, so the
// same item can only be held once.
type Inventory struct {
	items ItemSet
	order []string
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{items: mapset.New[string]()}
}

// Add puts an item in the inventory, returning false if it was already held
func (inv *Inventory) Add(item string) bool {
	if item == "" || inv.items.Has(item) {
		return false
	}
	inv.items.Put(item)
	inv.order = append(inv.order, item)
	return true
}

// Has checks if the inventory holds the item
func (inv *Inventory) Has(item string) bool {
	return inv.items.Has(item)
}

// Size returns the number of distinct items held
func (inv *Inventory) Size() int {
	return inv.items.Size()
}

// Items returns the held items in pickup order
func (inv *Inventory) Items() []string {
	out := make([]string, len(inv.order))
	copy(out, inv.order)
	return out
}
