// Package redis connects to Redis and relays published events between
// broadcaster instances over Redis Pub/Sub.
//
// Connect creates a client, retrying the initial ping with exponential
// backoff until ConnectTimeout. Healthcheck returns a ping probe suitable for
// readiness endpoints.
//
// A Relay publishes each event to the local broadcaster right away and to a
// Redis channel tagged with the instance origin. Every instance runs the relay
// subscriber, which delivers messages from other origins into its own
// broadcaster with PublishFrame. Delivery stays best-effort: messages that
// arrive while an instance is disconnected from Redis are lost.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	relay := redis.NewRelay(client, b, redis.WithChannel(cfg.Redis.Channel))
//	g.Go(relay.Run(ctx))
//
// Errors can be checked with errors.Is:
//
//   - ErrEmptyConnectionURL: no connection URL configured
//   - ErrFailedToParseRedisConnString: malformed URL
//   - ErrRedisNotReady: ping did not succeed within the timeout
//   - ErrHealthcheckFailed: health probe failed
//   - ErrInvalidMessage: relay message could not be decoded
package redis
