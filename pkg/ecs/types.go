// Package ecs implements the ECS archetype and registry/view layer (spec
// §3.11, §3.12 via §4.11, §4.12): archetype-indexed storage keyed by a
// structural hash of component types, with entity migration between
// archetypes and a view iterator. Views hand out live pointers into component
// storage and do not restrict callers to reads.
//
// © 2025 ccl authors. MIT License.
package ecs

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/Voskan/ccl/internal/xhash"
	"github.com/Voskan/ccl/pkg/packed"
)

// EntityTag distinguishes Entity handles from any other packed.Handle family
// in the program.
type EntityTag struct{}

// Entity is versioned_handle<Entity> (spec §3.11): a (generation, id) pair.
type Entity = packed.Handle[EntityTag, uint32]

// DefaultEntityValueWidth is HANDLE_VALUE_WIDTH applied to entity ids (spec
// §6).
const DefaultEntityValueWidth = packed.DefaultValueWidth

var (
	typeCounter uint64
	typeIDs     sync.Map // reflect.Type -> uint64
)

// componentTypeID assigns a stable, dense integer identity to T the first
// time it is observed, mirroring typeid(component<T>).hash_code() from the
// source (spec §3.11) without reflection-based hashing on every call.
func componentTypeID[T any]() uint64 {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := typeIDs.Load(t); ok {
		return v.(uint64)
	}
	id := atomic.AddUint64(&typeCounter, 1)
	actual, _ := typeIDs.LoadOrStore(t, id)
	return actual.(uint64)
}

// componentTypeHash is the per-type hash XORed to build archetype identity
// (spec §4.11 make_id/extend_id).
func componentTypeHash[T any]() uint64 {
	return xhash.TypeHash(componentTypeID[T]())
}

// entityColumnHash is the reserved key identifying the implicit Entity
// column every archetype carries (spec §3.11: "every archetype implicitly
// contains an Entity column"). componentTypeID never returns 0, so
// TypeHash(0) cannot collide with a real component's hash.
var entityColumnHash = xhash.TypeHash(0)

func newEntityHandle(generation, id uint32, valueWidth uint8) (Entity, error) {
	return packed.New[EntityTag, uint32](generation, id, valueWidth)
}
