// Package redis stores sessions in Redis through github.com/redis/go-redis/v9.
//
// Store implements session.Store with one string key per session
// ("session:<id>" by default). Set maps to SET with a PX expiry, so Redis
// drops expired sessions on its own. Connect retries the initial ping using
// Config, and Healthcheck plugs the client into readiness probes.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	sessions := session.New(redis.NewStoreFromConfig(client, cfg))
package redis
