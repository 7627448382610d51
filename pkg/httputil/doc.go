// Package httputil provides HTTP infrastructure for the YouTube API client.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff to avoid hammering the API while it recovers:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.fetch(ctx, url, &resp)
//	})
//
// Only errors wrapped in [RetryableError] are retried; 4xx responses such as
// quota rejections fail immediately. Retrying here does not conflict with the
// traversal engine's one-call-per-item rule: the engine still issues exactly
// one collaborator call per expanded item, and the transport resolves that
// call to a single final outcome.
package httputil
