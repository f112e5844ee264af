package plex

import (
	"context"
	"fmt"

	"github.com/mmcdole/plexapi/internal/domain"
)

// pageFetcher fetches size records starting at offset start and reports the
// server's total (0 when unknown)
type pageFetcher[C any] func(ctx context.Context, start, size int) ([]C, int, error)

// paginate fetches pages in increasing offset order until a page comes back
// short or maxResults records have been collected. maxResults of 0 means no
// cap; the result is truncated to exactly maxResults otherwise. A cancelled
// context discards everything fetched so far.
func paginate[C any](
	ctx context.Context,
	fetch pageFetcher[C],
	pageSize int,
	maxResults int,
	onProgress domain.ProgressFunc,
) ([]C, error) {
	if maxResults < 0 {
		return nil, fmt.Errorf("%w: maxResults %d is negative", domain.ErrInvalidArgument, maxResults)
	}
	size := clampPageSize(pageSize)
	if maxResults > 0 && maxResults < size {
		size = maxResults
	}

	var all []C
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, total, err := fetch(ctx, len(all), size)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if onProgress != nil {
			onProgress(len(all), total)
		}

		if maxResults > 0 && len(all) >= maxResults {
			return all[:maxResults], nil
		}
		if len(items) < size {
			return all, nil
		}
	}
}
