package types

import (
	"sync"
	"testing"
	"time"
)

func TestControlledQueueOrder(t *testing.T) {
	cq := NewControlledQueue[int]()
	for i := 0; i < 5; i++ {
		if !cq.Send(i) {
			t.Fatalf("send %d failed on open queue", i)
		}
	}
	for i := 0; i < 5; i++ {
		v, ok := cq.Recv()
		if !ok || v != i {
			t.Fatalf("recv = (%d, %v), want (%d, true)", v, ok, i)
		}
	}
}

func TestControlledQueueAttemptRecvEmpty(t *testing.T) {
	cq := NewControlledQueue[string]()
	canRecv, v, ok := cq.AttemptRecv(false)
	if canRecv || v != "" || !ok {
		t.Fatalf("AttemptRecv on empty = (%v, %q, %v)", canRecv, v, ok)
	}
}

func TestControlledQueueReplace(t *testing.T) {
	cq := NewControlledQueue[int]()
	cq.Send(1)
	cq.Send(2)
	dropped, ok := cq.Replace(3)
	if !ok || dropped != 2 {
		t.Fatalf("Replace = (%d, %v), want (2, true)", dropped, ok)
	}
	if n := cq.Len(); n != 1 {
		t.Fatalf("Len = %d, want 1", n)
	}
	if v, _ := cq.Recv(); v != 3 {
		t.Fatalf("recv = %d, want 3", v)
	}
}

func TestControlledQueueCloseWakesReceivers(t *testing.T) {
	cq := NewControlledQueue[int]()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := cq.Recv(); ok {
				t.Errorf("recv on closed queue reported ok")
			}
		}()
	}
	time.Sleep(10 * time.Millisecond)
	cq.Close()
	cq.Close()
	wg.Wait()

	if cq.Send(1) {
		t.Fatal("send on closed queue succeeded")
	}
	if _, ok := cq.Replace(1); ok {
		t.Fatal("replace on closed queue succeeded")
	}
}

func TestControlledQueueManyReceivers(t *testing.T) {
	const n = 100
	cq := NewControlledQueue[int]()
	got := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := cq.Recv()
				if !ok {
					return
				}
				got <- v
			}
		}()
	}
	for i := 0; i < n; i++ {
		cq.Send(i)
	}

	seen := make(map[int]bool, n)
	timeout := time.After(5 * time.Second)
	for len(seen) < n {
		select {
		case v := <-got:
			seen[v] = true
		case <-timeout:
			t.Fatalf("received %d of %d items", len(seen), n)
		}
	}
	cq.Close()
	wg.Wait()
}
