// Package resilience retries operations against infrastructure that may not
// be up yet, such as a database or Redis at process start.
//
//	err := resilience.Retry(ctx, resilience.Backoff{Attempts: 5}, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
package resilience
