package middleware

import (
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// TestNewChatRateLimiter tests the creation of a new ChatRateLimiter.
func TestNewChatRateLimiter(t *testing.T) {
	rl := NewChatRateLimiter(1, 5)
	if rl == nil {
		t.Fatal("Expected ChatRateLimiter to be created, got nil")
	}
	if rl.r != 1 {
		t.Errorf("Expected rate limit to be 1, got %v", rl.r)
	}
	if rl.Burst() != 5 {
		t.Errorf("Expected burst limit to be 5, got %v", rl.Burst())
	}
}

// TestGetLimiter tests that a chat gets a limiter on first use and keeps it.
func TestGetLimiter(t *testing.T) {
	rl := NewChatRateLimiter(1, 5)
	chatID := int64(123456)

	limiter := rl.getLimiter(chatID)
	if limiter == nil {
		t.Fatal("Expected limiter to be created, got nil")
	}
	if _, exists := rl.chats[chatID]; !exists {
		t.Error("Expected chat to be added to chats map, but it was not found")
	}
	if rl.getLimiter(chatID) != limiter {
		t.Error("Expected the same limiter on repeated lookups")
	}
}

// TestRateLimiting tests the actual rate limiting functionality.
func TestRateLimiting(t *testing.T) {
	rl := NewChatRateLimiter(rate.Limit(1), 1) // 1 req/s, burst 1
	chatID := int64(1)

	// Allow the first request
	if !rl.Allow(chatID) {
		t.Error("Expected first request to be allowed")
	}

	// Second request should not be allowed immediately
	if rl.Allow(chatID) {
		t.Error("Expected second request to be denied due to rate limiting")
	}

	// Wait for 1 second and then the request should be allowed again
	time.Sleep(1 * time.Second)
	if !rl.Allow(chatID) {
		t.Error("Expected request to be allowed after waiting")
	}
}

// TestBurstExhaustion tests that the burst is consumed before denials start.
func TestBurstExhaustion(t *testing.T) {
	rl := NewChatRateLimiter(rate.Limit(1), 3)
	chatID := int64(2)

	for i := 0; i < 3; i++ {
		if !rl.Allow(chatID) {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}
	if rl.Allow(chatID) {
		t.Error("Expected request after burst to be denied")
	}
}

// TestPerChatIsolation tests that one chat exhausting its bucket does not
// affect another chat.
func TestPerChatIsolation(t *testing.T) {
	rl := NewChatRateLimiter(rate.Limit(1), 1)

	if !rl.Allow(int64(10)) {
		t.Error("Expected first request from chat 10 to be allowed")
	}
	if rl.Allow(int64(10)) {
		t.Error("Expected second request from chat 10 to be denied")
	}

	// A different chat has its own bucket.
	if !rl.Allow(int64(20)) {
		t.Error("Expected request from chat 20 to be allowed")
	}
}

// TestConcurrentAccess exercises the limiter map under concurrent use.
func TestConcurrentAccess(t *testing.T) {
	rl := NewChatRateLimiter(rate.Limit(100), 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rl.Allow(int64(i % 5))
		}(i)
	}
	wg.Wait()

	if len(rl.chats) != 5 {
		t.Errorf("Expected 5 chat limiters, got %d", len(rl.chats))
	}
}
