package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"
)

func openTestPrefs(t *testing.T, path string) *Prefs {
	t.Helper()
	p, err := OpenPrefs(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenPrefs: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNextID_StartsAtZeroAndIncreases(t *testing.T) {
	ctx := context.Background()
	a := NewIDAllocator(openTestPrefs(t, filepath.Join(t.TempDir(), "prefs.sqlite")))

	for want := 0; want < 5; want++ {
		got, err := a.NextID(ctx)
		if err != nil {
			t.Fatalf("NextID: %v", err)
		}
		if got != want {
			t.Fatalf("expected id %d, got %d", want, got)
		}
	}
	next, err := a.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if next != 5 {
		t.Fatalf("expected counter 5, got %d", next)
	}
}

func TestNextID_NeverRepeatsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.sqlite")
	seen := map[int]bool{}
	last := -1

	for run := 0; run < 3; run++ {
		p, err := OpenPrefs(ctx, path)
		if err != nil {
			t.Fatalf("OpenPrefs(run %d): %v", run, err)
		}
		a := NewIDAllocator(p)
		for i := 0; i < 4; i++ {
			id, err := a.NextID(ctx)
			if err != nil {
				t.Fatalf("NextID(run %d): %v", run, err)
			}
			if seen[id] || id <= last {
				t.Fatalf("id %d repeated or not increasing (last %d)", id, last)
			}
			seen[id] = true
			last = id
		}
		if err := p.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 distinct ids, got %d", len(seen))
	}
}

func TestNextID_ConcurrentHandlesHandOutDistinctIDs(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.sqlite")

	const handles, perHandle = 4, 20
	allocs := make([]*IDAllocator, handles)
	for i := range allocs {
		allocs[i] = NewIDAllocator(openTestPrefs(t, path))
	}

	var mu sync.Mutex
	seen := map[int]bool{}
	errCh := make(chan error, handles*perHandle)

	var wg sync.WaitGroup
	for _, a := range allocs {
		wg.Add(1)
		go func(a *IDAllocator) {
			defer wg.Done()
			for i := 0; i < perHandle; i++ {
				id, err := a.NextID(ctx)
				if err != nil {
					errCh <- err
					return
				}
				mu.Lock()
				if seen[id] {
					mu.Unlock()
					errCh <- errors.New("duplicate id")
					return
				}
				seen[id] = true
				mu.Unlock()
			}
		}(a)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("allocation failed: %v", err)
	}
	if len(seen) != handles*perHandle {
		t.Fatalf("expected %d ids, got %d", handles*perHandle, len(seen))
	}
}

func TestNextID_ExhaustedCounterFailsClosed(t *testing.T) {
	ctx := context.Background()
	p := openTestPrefs(t, filepath.Join(t.TempDir(), "prefs.sqlite"))
	if err := p.SetInt(ctx, KeyChecklistItemID, math.MaxInt); err != nil {
		t.Fatalf("SetInt: %v", err)
	}

	a := NewIDAllocator(p)
	if _, err := a.NextID(ctx); !errors.Is(err, ErrAllocatorExhausted) {
		t.Fatalf("expected ErrAllocatorExhausted, got %v", err)
	}
	cur, err := a.Peek(ctx)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if cur != math.MaxInt {
		t.Fatalf("expected counter unchanged, got %d", cur)
	}
}

func TestNextID_NegativeCounterIsCorrupt(t *testing.T) {
	ctx := context.Background()
	p := openTestPrefs(t, filepath.Join(t.TempDir(), "prefs.sqlite"))
	if err := p.SetInt(ctx, KeyChecklistItemID, -3); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	_, err := NewIDAllocator(p).NextID(ctx)
	if !IsCorrupt(err) {
		t.Fatalf("expected corrupt data error, got %v", err)
	}
}
