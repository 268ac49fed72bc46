// Package ratelimiter is a token bucket limiter with an LRU-bounded memory
// store and chi-compatible middleware.
//
//	store := ratelimiter.NewMemoryStore(10000)
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity: 30, RefillRate: 1, RefillInterval: 2 * time.Second,
//	})
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.ClientIP(), log))
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset; denied ones also get Retry-After.
package ratelimiter
