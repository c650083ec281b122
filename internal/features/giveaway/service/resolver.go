package service

import (
	"context"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"giveaway-club-backend/internal/common/logger"
	"giveaway-club-backend/internal/features/giveaway/models"
	"giveaway-club-backend/internal/platform/bundlegames"
)

// BundleLookup is the external bundle-games search surface the resolver
// depends on.
type BundleLookup interface {
	Search(ctx context.Context, query string) ([]bundlegames.Record, error)
}

// Resolver memoizes bundle-game lookups for the duration of one run.
// Hits and misses are both cached so each title costs at most one
// external call per batch. It is request-scoped: build a fresh one per
// run, never share across runs.
type Resolver struct {
	lookup BundleLookup
	memo   *lru.Cache[string, *bundlegames.Record]
}

func NewResolver(lookup BundleLookup, size int) (*Resolver, error) {
	memo, err := lru.New[string, *bundlegames.Record](size)
	if err != nil {
		return nil, err
	}
	return &Resolver{lookup: lookup, memo: memo}, nil
}

// Resolve finds the bundle record for a giveaway's title, or nil when the
// title has never been bundled. Lookups key on app id when present, else
// on a case-insensitive exact name match within the result set.
func (r *Resolver) Resolve(ctx context.Context, g *models.Giveaway) (*bundlegames.Record, error) {
	key := cacheKey(g)
	if rec, ok := r.memo.Get(key); ok {
		return rec, nil
	}

	var query string
	if g.AppID != nil {
		query = strconv.Itoa(*g.AppID)
	} else {
		query = g.Name
	}

	results, err := r.lookup.Search(ctx, query)
	if err != nil {
		// Cache the miss so a failing title is not retried for every
		// giveaway of the same game within the batch.
		r.memo.Add(key, nil)
		return nil, err
	}

	rec := match(g, results)
	r.memo.Add(key, rec)
	return rec, nil
}

func match(g *models.Giveaway, results []bundlegames.Record) *bundlegames.Record {
	var found *bundlegames.Record
	matches := 0

	for i := range results {
		rec := &results[i]
		if g.AppID != nil {
			if rec.AppID != nil && *rec.AppID == *g.AppID {
				if found == nil {
					found = rec
				}
				matches++
			}
			continue
		}
		if strings.EqualFold(rec.Name, g.Name) {
			if found == nil {
				found = rec
			}
			matches++
		}
	}

	if matches > 1 {
		logger.Warn().
			Str("name", g.Name).
			Int("matches", matches).
			Msg("ambiguous bundle lookup, using first match")
	}

	return found
}

func cacheKey(g *models.Giveaway) string {
	if g.AppID != nil {
		return "app:" + strconv.Itoa(*g.AppID)
	}
	return "name:" + strings.ToLower(g.Name)
}
