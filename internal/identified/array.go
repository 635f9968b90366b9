// Package identified provides an ordered collection whose elements are unique by ID.
package identified

import "slices"

// Identifiable is implemented by values with a stable identity.
type Identifiable[K comparable] interface {
	ID() K
}

// Array is an ordered collection of elements with unique IDs.
//
// Mutating methods never write into storage shared with earlier copies of
// the Array, so a copied value is a stable snapshot.
type Array[K comparable, T Identifiable[K]] struct {
	elems []T
	index map[K]int
}

// New builds an Array from elems in order. Later duplicates of an ID are dropped.
func New[K comparable, T Identifiable[K]](elems ...T) Array[K, T] {
	a := Array[K, T]{
		elems: make([]T, 0, len(elems)),
		index: make(map[K]int, len(elems)),
	}
	for _, e := range elems {
		if _, ok := a.index[e.ID()]; ok {
			continue
		}
		a.index[e.ID()] = len(a.elems)
		a.elems = append(a.elems, e)
	}
	return a
}

// Len returns the number of elements.
func (a Array[K, T]) Len() int { return len(a.elems) }

// At returns the element at position i.
func (a Array[K, T]) At(i int) T { return a.elems[i] }

// Get returns the element with the given ID.
func (a Array[K, T]) Get(id K) (T, bool) {
	i, ok := a.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return a.elems[i], true
}

// Contains reports whether an element with the given ID is present.
func (a Array[K, T]) Contains(id K) bool {
	_, ok := a.index[id]
	return ok
}

// IndexOf returns the position of id, or -1.
func (a Array[K, T]) IndexOf(id K) int {
	if i, ok := a.index[id]; ok {
		return i
	}
	return -1
}

// Elements returns a copy of the elements in order.
func (a Array[K, T]) Elements() []T { return slices.Clone(a.elems) }

// IDs returns the element IDs in order.
func (a Array[K, T]) IDs() []K {
	ids := make([]K, len(a.elems))
	for i, e := range a.elems {
		ids[i] = e.ID()
	}
	return ids
}

// Append adds e at the end. It returns false if the ID is already present.
func (a *Array[K, T]) Append(e T) bool {
	if a.Contains(e.ID()) {
		return false
	}
	index := a.cloneIndex()
	index[e.ID()] = len(a.elems)
	a.elems = append(slices.Clip(a.elems), e)
	a.index = index
	return true
}

// Set replaces the element sharing e's ID. It returns false if no such element exists.
func (a *Array[K, T]) Set(e T) bool {
	i, ok := a.index[e.ID()]
	if !ok {
		return false
	}
	elems := slices.Clone(a.elems)
	elems[i] = e
	a.elems = elems
	return true
}

// Remove deletes the element with the given ID. It returns false if it was absent.
func (a *Array[K, T]) Remove(id K) bool {
	i, ok := a.index[id]
	if !ok {
		return false
	}
	elems := make([]T, 0, len(a.elems)-1)
	elems = append(elems, a.elems[:i]...)
	elems = append(elems, a.elems[i+1:]...)
	*a = New[K, T](elems...)
	return true
}

func (a Array[K, T]) cloneIndex() map[K]int {
	index := make(map[K]int, len(a.index)+1)
	for k, v := range a.index {
		index[k] = v
	}
	return index
}
