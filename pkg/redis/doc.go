// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// Connect retries the initial ping according to Config, and Healthcheck
// wraps a client into a readiness probe. The history package builds its
// RedisStore on the returned client.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := history.NewRedisStore(client, cfg.HistoryKey)
package redis
