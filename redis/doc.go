// Package redis wraps go-redis with ledger logging, configuration and
// component lifecycle. It backs the login attempt counters in auth/throttle.
//
//	comp := redis.NewComponent(cfg, log)
//	registry.Register(comp)
//	// after StartAll
//	n, err := comp.Client().IncrWindow(ctx, "login:alice", 15*time.Minute)
package redis
