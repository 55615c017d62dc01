/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

// Package recency provides an arena-backed doubly linked list of keys ordered
// from the most recently used (front) to the least recently used (back).
//
// Nodes live in a single slice and are addressed by Handle values (slot index plus generation)
// instead of pointers, so handles stored elsewhere never dangle:
// a handle to a removed node simply stops being live, even if its slot is reused later.
//
// All operations are O(1). The list is not safe for concurrent use.
package recency
