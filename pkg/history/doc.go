// Package history stores the list of generated and scanned QR codes.
//
// A Store keeps records newest first and caps the list at a configurable
// size (50 by default), evicting the oldest records on append. Five
// implementations share the same contract:
//
//   - MemoryStore: process memory, lost on restart.
//   - BoltStore: a single bbolt file, for single-node deployments.
//   - RedisStore: a capped Redis list (LPUSH + LTRIM in one MULTI).
//   - PostgresStore: the qr_history table; run Migrations with goose first.
//   - MongoStore: a MongoDB collection.
//
// # Usage
//
//	store := history.NewMemoryStore(history.WithMaxItems(100))
//
//	rec := history.NewRecord(history.KindGenerated, qrcontent.URL, "https://example.com")
//	rec.Metadata = &history.Metadata{Size: 256, ErrorCorrection: "M"}
//	if err := store.Append(ctx, rec); err != nil {
//		// handle error
//	}
//
//	records, _ := store.List(ctx, 0)
//	stats := history.Summarize(records)
//
// # Errors
//
// Remove returns ErrRecordNotFound for unknown IDs. Append rejects records
// without an ID, kind or known content type with ErrInvalidRecord. Backend
// failures are joined with ErrStoreFailed.
package history
