package middleware

import (
	"sync"

	"golang.org/x/time/rate"
)

// ChatRateLimiter manages one token-bucket limiter per chat so a single
// chat hammering the bot cannot starve the others.
type ChatRateLimiter struct {
	chats map[int64]*rate.Limiter
	mu    *sync.Mutex
	r     rate.Limit
	burst int
}

// NewChatRateLimiter creates a per-chat rate limiter
func NewChatRateLimiter(r rate.Limit, burst int) *ChatRateLimiter {
	return &ChatRateLimiter{
		chats: make(map[int64]*rate.Limiter),
		mu:    &sync.Mutex{},
		r:     r,
		burst: burst,
	}
}

// Allow reports whether chatID may perform another interaction right now.
func (c *ChatRateLimiter) Allow(chatID int64) bool {
	return c.getLimiter(chatID).Allow()
}

// Burst returns the configured burst limit
func (c *ChatRateLimiter) Burst() int {
	return c.burst
}

func (c *ChatRateLimiter) getLimiter(chatID int64) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	limiter, exists := c.chats[chatID]
	if !exists {
		limiter = rate.NewLimiter(c.r, c.burst)
		c.chats[chatID] = limiter
	}
	return limiter
}
