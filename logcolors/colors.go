package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Red    = "\033[31m"
)

// Cache-related log prefixes
const (
	LogCache       = Blue + "[Cache]" + Reset
	LogCacheHit    = Green + "[Cache:Hit]" + Reset
	LogCacheMiss   = Cyan + "[Cache:Miss]" + Reset
	LogCacheExpire = Blue + "[Cache:Expire]" + Reset
)

// Bot interaction log prefixes
const (
	LogBot       = Green + "[Bot]" + Reset
	LogToken     = Purple + "[Token]" + Reset
	LogPage      = Cyan + "[Page]" + Reset
	LogRateLimit = Purple + "[RateLimit]" + Reset
)

// Engine log prefixes
const (
	LogSearch   = Blue + "[Search]" + Reset
	LogFetch    = Cyan + "[Fetch]" + Reset
	LogDownload = Blue + "[Download]" + Reset
	LogCleanup  = Cyan + "[Cleanup]" + Reset
)

// Server/Init log prefixes
const (
	LogServer   = Green + "[Server]" + Reset
	LogConfig   = Cyan + "[Config]" + Reset
	LogStats    = Blue + "[Stats]" + Reset
	LogNotifier = Cyan + "[Notifier]" + Reset
)

// CircuitBreakerPrefix returns a colored circuit breaker prefix with the given name
func CircuitBreakerPrefix(name string) string {
	return Purple + "[CircuitBreaker:" + name + "]" + Reset
}
