// Package bench provides reproducible micro-benchmarks for CCL's containers.
// Run via:  go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// The benchmarks share a single entity/component shape so results are
// comparable across versions:
//   - Entity    - the ECS registry's own handle type
//   - Component - an 8-byte position struct (small, cache-friendly)
//
// We measure:
//  1. AddComponent    - archetype-migration-heavy write workload
//  2. ViewIterate     - read-only iteration over a populated view
//  3. HandleAcquireRelease - handle manager slot churn
//  4. ConcurrentRegistries - many independent Registry instances driven in
//     parallel, proving instance isolation (spec: containers carry no
//     hidden global state, so separate instances on separate goroutines
//     never contend)
//
// NOTE: package-level unit tests live alongside their packages; this file is
// only for performance and concurrency-isolation checks.
//
// © 2025 ccl authors. MIT License.
package bench

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/Voskan/ccl/pkg/ecs"
	"github.com/Voskan/ccl/pkg/handlemgr"
)

type position struct{ x, y float32 }

const entityCount = 1 << 14

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
}

func newPopulatedRegistry(b interface{ Fatalf(string, ...any) }) *ecs.Registry {
	r := ecs.New()
	for i := 0; i < entityCount; i++ {
		e, err := r.AddEntity()
		if err != nil {
			b.Fatalf("add entity: %v", err)
		}
		if err := ecs.AddComponent(r, e, position{x: float32(i), y: float32(-i)}); err != nil {
			b.Fatalf("add component: %v", err)
		}
	}
	return r
}

func BenchmarkAddComponent(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := ecs.New()
		e, _ := r.AddEntity()
		_ = ecs.AddComponent(r, e, position{x: 1, y: 1})
	}
}

func BenchmarkViewIterate(b *testing.B) {
	r := newPopulatedRegistry(b)
	view := ecs.NewView1[position](r)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		view.Iterate(func(_ ecs.Entity, p *position) { p.x++ })
	}
}

type widgetTag struct{}

func BenchmarkHandleAcquireRelease(b *testing.B) {
	m := handlemgr.New[widgetTag]()
	handles := make([]handlemgr.Handle[widgetTag], 0, 1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := m.Acquire()
		handles = append(handles, h)
		if len(handles) == cap(handles) {
			for _, h := range handles {
				_ = m.Release(h)
			}
			handles = handles[:0]
		}
	}
}

// TestConcurrentIndependentRegistries drives many Registry instances on
// separate goroutines via errgroup, each fully self-contained, and asserts
// none observe any other's entities — the isolation guarantee that lets CCL
// containers skip internal locking.
func TestConcurrentIndependentRegistries(t *testing.T) {
	const workers = 32
	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			r := ecs.New()
			seed := rand.New(rand.NewSource(int64(w)))
			n := 50 + seed.Intn(50)
			for i := 0; i < n; i++ {
				e, err := r.AddEntity()
				if err != nil {
					return err
				}
				if err := ecs.AddComponent(r, e, position{x: float32(i)}); err != nil {
					return err
				}
			}
			view := ecs.NewView1[position](r)
			if got := view.Size(); got != n {
				return errTooFew(w, n, got)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

type errTooFewT struct {
	worker, want, got int
}

func (e errTooFewT) Error() string {
	return fmt.Sprintf("worker %d: view saw %d entities, want %d (isolation violated)", e.worker, e.got, e.want)
}

func errTooFew(worker, want, got int) error {
	return errTooFewT{worker: worker, want: want, got: got}
}
