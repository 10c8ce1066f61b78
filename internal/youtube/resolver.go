package youtube

import (
	"context"
	"log/slog"
	"math"

	"github.com/jaki95/playlist-maker/internal/domain"
	"github.com/jaki95/playlist-maker/internal/query"
)

// durationTolerance is the maximum accepted difference, in seconds, between
// the target duration and a candidate's reported duration. The bound is
// inclusive: a difference of exactly 30 seconds is accepted.
const durationTolerance = 30.0

// searcher is the search surface the resolver needs from a Client.
type searcher interface {
	Search(ctx context.Context, searchQuery string) (*Candidate, error)
}

// Resolver evaluates search variants in order and accepts the first
// candidate that passes the duration gate.
type Resolver struct {
	search searcher
}

// NewResolver creates a resolver over the given search client.
func NewResolver(search searcher) *Resolver {
	return &Resolver{search: search}
}

// Resolve tries each variant in order and returns the first acceptable
// candidate together with the variant that produced it. Search errors and
// duration mismatches are soft rejections: logged, then on to the next
// variant. When every variant is exhausted it returns ErrNoMatch.
func (r *Resolver) Resolve(ctx context.Context, track *domain.TargetTrack, variants []query.Variant) (*Candidate, query.Variant, error) {
	targetDuration := track.DurationSeconds()

	for _, variant := range variants {
		slog.Info("searching", "track", track.Index, "query", variant.Query)

		candidate, err := r.search.Search(ctx, variant.Query)
		if err != nil {
			slog.Warn("search failed, trying next variant", "query", variant.Query, "error", err)
			continue
		}

		if targetDuration > 0 && candidate.Duration > 0 {
			if diff := math.Abs(candidate.Duration - targetDuration); diff > durationTolerance {
				slog.Info("skipping due to duration mismatch",
					"query", variant.Query,
					"expected", targetDuration,
					"got", candidate.Duration,
				)
				continue
			}
		}

		return candidate, variant, nil
	}

	return nil, query.Variant{}, ErrNoMatch
}
