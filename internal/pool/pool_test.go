package pool

import (
	"sync/atomic"
	"testing"
)

func TestInlineRunsSynchronously(t *testing.T) {
	p := New(1)
	var ran bool
	p.Submit(func() { ran = true })
	if !ran {
		t.Fatal("inline pool did not run task before Submit returned")
	}
	p.Wait()
}

func TestDedicatedRunsAllTasks(t *testing.T) {
	p := New(4)
	var n int64
	const total = 500
	for i := 0; i < total; i++ {
		p.Submit(func() { atomic.AddInt64(&n, 1) })
	}
	p.Wait()
	if got := atomic.LoadInt64(&n); got != total {
		t.Fatalf("ran %d tasks, want %d", got, total)
	}
}

func TestDedicatedTasksSubmittingChildren(t *testing.T) {
	p := New(3)
	var n int64
	var submit func(depth int)
	submit = func(depth int) {
		atomic.AddInt64(&n, 1)
		if depth == 0 {
			return
		}
		for i := 0; i < 3; i++ {
			d := depth - 1
			p.Submit(func() { submit(d) })
		}
	}
	p.Submit(func() { submit(3) })
	p.Wait()
	// 1 + 3 + 9 + 27 = 40
	if got := atomic.LoadInt64(&n); got != 40 {
		t.Fatalf("ran %d tasks, want 40", got)
	}
}

func TestGlobalHandleIsolatesWait(t *testing.T) {
	h1 := New(0)
	h2 := New(0)
	var n1, n2 int64
	for i := 0; i < 50; i++ {
		h1.Submit(func() { atomic.AddInt64(&n1, 1) })
		h2.Submit(func() { atomic.AddInt64(&n2, 1) })
	}
	h1.Wait()
	if got := atomic.LoadInt64(&n1); got != 50 {
		t.Fatalf("handle 1 ran %d tasks, want 50", got)
	}
	h2.Wait()
	if got := atomic.LoadInt64(&n2); got != 50 {
		t.Fatalf("handle 2 ran %d tasks, want 50", got)
	}
}
