package taxonomy

import "context"

// Category is a canonical interview-question category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GetID returns the record id.
func (c Category) GetID() string { return c.ID }

// GetName returns the canonical name.
func (c Category) GetName() string { return c.Name }

// Trait is a canonical behavioral trait.
type Trait struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GetID returns the record id.
func (t Trait) GetID() string { return t.ID }

// GetName returns the canonical name.
func (t Trait) GetName() string { return t.Name }

// Record is the common shape of canonical taxonomy entities.
type Record interface {
	GetID() string
	GetName() string
}

// Store is the persistence collaborator that owns taxonomy records.
// The graph-database query layer implements it; this subsystem only reads.
type Store interface {
	Categories(ctx context.Context) ([]Category, error)
	Traits(ctx context.Context) ([]Trait, error)
}
