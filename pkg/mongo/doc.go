// Package mongo stores sessions in MongoDB using go.mongodb.org/mongo-driver/v2.
//
// Each session is a document {_id, value, expiresAt, updatedAt}. Set uses
// ReplaceOne with upsert so the stored value is always fully replaced, and a
// TTL index on expiresAt (created by Store.EnsureIndexes) lets the server
// purge expired sessions. Reads also check expiresAt because the TTL monitor
// only runs periodically.
//
// New connects with retries; Healthcheck returns a ping probe.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := mongo.NewStoreFromConfig(client, cfg)
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
package mongo
