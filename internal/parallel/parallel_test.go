package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}
	var sum int64
	For(100, func(i int) { sum += int64(i) }, cfg)
	if sum != 4950 {
		t.Errorf("For sequential sum = %d, want 4950", sum)
	}
}

func TestFor_Parallel(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	var sum atomic.Int64
	For(1000, func(i int) { sum.Add(int64(i)) }, cfg)
	if sum.Load() != 499500 {
		t.Errorf("For parallel sum = %d, want 499500", sum.Load())
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, func(i int) { called = true }, DefaultConfig())
	if called {
		t.Error("For(0) should not invoke f")
	}
}

func TestAny_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}
	hit := Any(100, func(s, e int) bool {
		for i := s; i < e; i++ {
			if i == 42 {
				return true
			}
		}
		return false
	}, cfg)
	if !hit {
		t.Error("Any should find index 42")
	}

	miss := Any(100, func(s, e int) bool { return false }, cfg)
	if miss {
		t.Error("Any should report false when pred never matches")
	}
}

func TestAny_Parallel(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16}
	hit := Any(10000, func(s, e int) bool {
		for i := s; i < e; i++ {
			if i == 9999 {
				return true
			}
		}
		return false
	}, cfg)
	if !hit {
		t.Error("Any should find index 9999 in the last chunk")
	}
}

func TestAny_Empty(t *testing.T) {
	if Any(0, func(s, e int) bool { return true }, DefaultConfig()) {
		t.Error("Any(0) must be false")
	}
}
