package queue

import (
	"context"
	"sync"
	"testing"
	"time"
)

// TestQueueFIFO verifies push order is preserved across pop and consume
func TestQueueFIFO(t *testing.T) {
	q := New[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}

	if v, ok := q.TryPop(); !ok || v != 0 {
		t.Fatalf("TryPop = %d, %v; want 0, true", v, ok)
	}

	got := q.Consume()
	if len(got) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Errorf("item %d = %d, want %d", i, v, i+1)
		}
	}

	if q.Len() != 0 {
		t.Errorf("Expected empty queue, got len %d", q.Len())
	}
	if got := q.Consume(); got != nil {
		t.Errorf("Expected nil on empty consume, got %v", got)
	}
}

// TestQueueCompaction pops past the compaction threshold and checks ordering survives
func TestQueueCompaction(t *testing.T) {
	q := New[int]()
	for i := 0; i < 200; i++ {
		q.Push(i)
	}
	for i := 0; i < 150; i++ {
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("pop %d = %d, %v", i, v, ok)
		}
	}
	q.Push(200)
	rest := q.Consume()
	if len(rest) != 51 || rest[0] != 150 || rest[50] != 200 {
		t.Errorf("unexpected remainder: len=%d first=%d last=%d", len(rest), rest[0], rest[len(rest)-1])
	}
}

// TestQueueWait verifies the blocking pop wakes on push and on cancellation
func TestQueueWait(t *testing.T) {
	q := New[string]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Push("chunk")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, ok := q.Wait(ctx)
	if !ok || v != "chunk" {
		t.Fatalf("Wait = %q, %v", v, ok)
	}

	cctx, ccancel := context.WithCancel(context.Background())
	ccancel()
	if _, ok := q.Wait(cctx); ok {
		t.Error("Expected Wait to fail on cancelled context")
	}
}

// TestQueueConcurrentProducers pushes from several goroutines into one consumer
func TestQueueConcurrentProducers(t *testing.T) {
	q := New[int]()
	const producers, perProducer = 8, 100

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()

	if n := len(q.Consume()); n != producers*perProducer {
		t.Errorf("Expected %d items, got %d", producers*perProducer, n)
	}

	select {
	case <-q.Ready():
	default:
		t.Error("Expected a pending ready signal after pushes")
	}
}
