// Package cache provides a generic, concurrency-safe LRU map.
//
// The HTTP layer keeps one live-preview session per client in an LRU so that
// abandoned sessions are dropped once the cache is full, and an evict
// callback cancels whatever work the dropped session still had in flight.
//
//	sessions := cache.NewLRU[string, *qr.Session](1024,
//		cache.WithOnEvict(func(_ string, s *qr.Session) { s.Close() }),
//	)
//	s, _ := sessions.GetOrCreate(id, svc.NewSession)
//
// All operations are O(1) except Purge.
package cache
