package testutil

import "github.com/scopekit/scopekit"

// PlainKey is a key with neither capability; its scope parents directly
// under the root.
type PlainKey string

func (k PlainKey) String() string {
	return string(k)
}

// ChildKey declares an ancestor. Comparable by value as long as ParentKey
// holds a comparable key.
type ChildKey struct {
	Name      string
	ParentKey scopekit.Key
}

func (k ChildKey) Parent() scopekit.Key {
	return k.ParentKey
}

func (k ChildKey) String() string {
	return k.Name
}

// CompositeKey expands into child scopes. Used by pointer so it stays
// comparable by identity despite the slice field.
type CompositeKey struct {
	Name     string
	Children []scopekit.Key
}

func (k *CompositeKey) Keys() []scopekit.Key {
	return k.Children
}

func (k *CompositeKey) String() string {
	return k.Name
}

// ChildCompositeKey carries both capabilities: nested under ParentKey and
// expanding into Children.
type ChildCompositeKey struct {
	Name      string
	ParentKey scopekit.Key
	Children  []scopekit.Key
}

func (k *ChildCompositeKey) Parent() scopekit.Key {
	return k.ParentKey
}

func (k *ChildCompositeKey) Keys() []scopekit.Key {
	return k.Children
}

func (k *ChildCompositeKey) String() string {
	return k.Name
}
