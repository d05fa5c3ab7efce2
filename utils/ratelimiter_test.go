package utils

import (
	"testing"
	"time"
)

func TestRateLimiterMinimumGap(t *testing.T) {
	const delayMs = 100
	r := NewRateLimiter(delayMs)

	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		r.Wait()
		timestamps = append(timestamps, time.Now())
	}

	min := delayMs * time.Millisecond
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < min {
			t.Errorf("gap between call %d and %d: %v < minimum %v", i-1, i, gap, min)
		}
	}
}

func TestLinkSetDeduplicates(t *testing.T) {
	s := NewLinkSet()

	if !s.Add("https://vivareal.com.br/imovel/1") {
		t.Error("first Add should return true")
	}
	if s.Add("https://vivareal.com.br/imovel/1") {
		t.Error("second Add of same link should return false")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}
