package session

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	sess := Session{ID: "s1", Turns: []Turn{
		{Role: "user", Content: "hello", At: time.Now()},
		{Role: "assistant", Content: "hi", At: time.Now()},
	}}
	if err := store.Put(ctx, "s1", sess); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("Get(s1) = ok=%v err=%v", ok, err)
	}
	if len(got.Turns) != 2 || got.Turns[0].Content != "hello" {
		t.Errorf("turns = %+v", got.Turns)
	}
}

func TestMemoryStoreCopiesOnGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "s1", Session{ID: "s1", Turns: []Turn{{Role: "user", Content: "original"}}}); err != nil {
		t.Fatal(err)
	}

	got, _, _ := store.Get(ctx, "s1")
	got.Turns[0].Content = "mutated"

	again, _, _ := store.Get(ctx, "s1")
	if again.Turns[0].Content != "original" {
		t.Error("mutating a returned session leaked into the store")
	}
}

func TestMemoryStoreSlidingWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var turns []Turn
	for i := 0; i < defaultMaxTurns+5; i++ {
		turns = append(turns, Turn{Role: "user", Content: fmt.Sprintf("turn %d", i)})
	}
	if err := store.Put(ctx, "s1", Session{ID: "s1", Turns: turns}); err != nil {
		t.Fatal(err)
	}

	got, _, _ := store.Get(ctx, "s1")
	if len(got.Turns) != defaultMaxTurns {
		t.Fatalf("kept %d turns, want %d", len(got.Turns), defaultMaxTurns)
	}
	if got.Turns[0].Content != "turn 5" {
		t.Errorf("oldest kept turn = %q, want the window to drop the first five", got.Turns[0].Content)
	}
}
