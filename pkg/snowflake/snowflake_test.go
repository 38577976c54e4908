package snowflake

import (
	"sync"
	"testing"
)

// 1️⃣ 基础测试：能不能生成 ID
func TestGenID(t *testing.T) {
	id := GenID()
	if id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}

// 2️⃣ 并发唯一性：退款单号不能重复
func TestGenID_Concurrent(t *testing.T) {
	const (
		goroutines = 16
		perRoutine = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]struct{}, goroutines*perRoutine)
		dup int64
	)

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenID()
				mu.Lock()
				if _, exists := ids[id]; exists {
					dup = id
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if dup != 0 {
		t.Fatalf("duplicate id found in concurrent test: %d", dup)
	}
}

// 3️⃣ 单调递增
func TestGenID_Order(t *testing.T) {
	prev := GenID()
	for i := 0; i < 1000; i++ {
		curr := GenID()
		if curr <= prev {
			t.Fatalf("ids not increasing: prev=%d curr=%d", prev, curr)
		}
		prev = curr
	}
}
