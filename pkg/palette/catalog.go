package palette

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Resource is one declared texture/material pair.
type Resource struct {
	Key    string
	Colors Tuple
	Layout string
}

// Digest is a short content hash of the resource key. Raw documents carry
// it as a suffix on texture file names until canonicalization strips it.
func (r Resource) Digest() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(r.Key))
}

// Catalog collects resources in declaration order, at most once per key.
// A Catalog is built and owned by a single assembly run.
type Catalog struct {
	resources []Resource
	index     map[string]int
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Declare registers the resource for t. Declaring a key that is already
// present returns the existing resource and adds nothing.
func (c *Catalog) Declare(t Tuple) (Resource, error) {
	if len(t) == 0 || len(t) > 3 {
		return Resource{}, fmt.Errorf("palette: tuple must hold 1 to 3 colors, got %d", len(t))
	}
	t = NewTuple(t...)
	for i, col := range t {
		if !col.valid() {
			return Resource{}, fmt.Errorf("palette: unknown color %q", string(col))
		}
		if i > 0 && t[i-1] == col {
			return Resource{}, fmt.Errorf("palette: duplicate color %q", string(col))
		}
	}
	if !IsPhysicallyValid(t) {
		return Resource{}, fmt.Errorf("%w: %s", ErrImpossibleCombination, t.Key())
	}

	key := t.Key()
	if i, ok := c.index[key]; ok {
		return c.resources[i], nil
	}
	layout, err := GridLayout(t)
	if err != nil {
		return Resource{}, err
	}
	r := Resource{Key: key, Colors: t, Layout: layout}
	c.index[key] = len(c.resources)
	c.resources = append(c.resources, r)
	return r, nil
}

// Has reports whether key has been declared.
func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of declared resources.
func (c *Catalog) Len() int {
	return len(c.resources)
}

// Resources returns the declared resources in declaration order.
func (c *Catalog) Resources() []Resource {
	return append([]Resource(nil), c.resources...)
}
