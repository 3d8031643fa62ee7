package store

import (
	"context"
	"log/slog"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// FetchFunc fetches the raw payload of one source.
type FetchFunc func(ctx context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error)

// FetchWithRetry calls fetch once, then once more after each delay while
// it keeps failing. Invalid and not-found sources fail immediately.
// A nil logger disables retry logging.
func FetchWithRetry(ctx context.Context, src *crossmcp.Source, fetch FetchFunc, delays []time.Duration, logger *slog.Logger) (*crossmcp.RawContent, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		raw, err := fetch(ctx, src)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if attempt == len(delays) || !retryable(err) {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if logger != nil {
			logger.Debug("retrying source",
				"path", src.Path,
				"attempt", attempt+2,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return nil, lastErr
}

func retryable(err error) bool {
	switch crossmcp.ErrorCode(err) {
	case crossmcp.EINVALID, crossmcp.ENOTFOUND:
		return false
	}
	return true
}
