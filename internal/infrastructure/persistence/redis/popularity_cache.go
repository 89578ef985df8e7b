package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/filmorate/filmorate/internal/domain/film"

	"github.com/redis/go-redis/v9"
)

// ══════════════════════════════════════════════════════════════════════════════
// POPULARITY CACHE IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PopularityCache implements film.PopularityCache on a Redis sorted set.
// Members are film ids, scores are like counts. The whole ranking expires
// after TTLPopularityCache so any drift from concurrent like traffic is
// bounded; the next read rebuilds it from storage.
type PopularityCache struct {
	cache *Cache
}

// NewPopularityCache creates a new PopularityCache.
func NewPopularityCache(cache *Cache) *PopularityCache {
	return &PopularityCache{cache: cache}
}

var _ film.PopularityCache = (*PopularityCache)(nil)

// Top returns up to limit film ids ordered by descending like count,
// ties broken by ascending id. Returns ErrCacheMiss when the ranking
// is not cached.
func (p *PopularityCache) Top(ctx context.Context, limit int) ([]film.FilmID, error) {
	if limit <= 0 {
		return []film.FilmID{}, nil
	}

	key := PopularityKey()

	exists, err := p.cache.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCacheMiss
	}

	// Fetch the whole set. Redis orders equal scores lexically, so any
	// range cut at limit could drop the wrong member of a tie; the set
	// is bounded by the catalog size, and the authoritative truncation
	// happens after the client-side re-sort.
	members, err := p.cache.Client().ZRevRangeWithScores(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	type entry struct {
		id    film.FilmID
		count int
	}

	entries := make([]entry, 0, len(members))
	for _, m := range members {
		raw, ok := m.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		entries = append(entries, entry{id: film.FilmID(id), count: int(m.Score)})
	}

	// Re-sort so ties go to the lower film id.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].id < entries[j].id
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	ids := make([]film.FilmID, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}

	return ids, nil
}

// Rebuild replaces the cached ranking with the given counts.
func (p *PopularityCache) Rebuild(ctx context.Context, counts map[film.FilmID]int) error {
	key := PopularityKey()

	pipe := p.cache.Client().TxPipeline()
	pipe.Del(ctx, key)

	if len(counts) > 0 {
		members := make([]redis.Z, 0, len(counts))
		for id, count := range counts {
			members = append(members, redis.Z{
				Score:  float64(count),
				Member: strconv.Itoa(id.Int()),
			})
		}
		pipe.ZAdd(ctx, key, members...)
	} else {
		// An empty ranking is still a valid cached state; keep a
		// sentinel member so Exists distinguishes "cached empty"
		// from "never built".
		pipe.ZAdd(ctx, key, redis.Z{Score: -1, Member: sentinelMember})
	}

	pipe.Expire(ctx, key, TTLPopularityCache)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rebuild popularity ranking: %w", err)
	}

	return nil
}

// IncrementLike bumps the cached like count of a film. A no-op when the
// ranking is not cached.
func (p *PopularityCache) IncrementLike(ctx context.Context, id film.FilmID) error {
	return p.adjust(ctx, id, 1)
}

// DecrementLike lowers the cached like count of a film. A no-op when the
// ranking is not cached.
func (p *PopularityCache) DecrementLike(ctx context.Context, id film.FilmID) error {
	return p.adjust(ctx, id, -1)
}

// Remove drops a film from the cached ranking.
func (p *PopularityCache) Remove(ctx context.Context, id film.FilmID) error {
	err := p.cache.Client().ZRem(ctx, PopularityKey(), strconv.Itoa(id.Int())).Err()
	if err != nil {
		return fmt.Errorf("failed to remove film from ranking: %w", err)
	}

	return nil
}

// Invalidate drops the whole cached ranking.
func (p *PopularityCache) Invalidate(ctx context.Context) error {
	return p.cache.Delete(ctx, PopularityKey())
}

// sentinelMember marks a cached-but-empty ranking. Its score is negative
// so it never wins a Top query over a real film.
const sentinelMember = "-"

func (p *PopularityCache) adjust(ctx context.Context, id film.FilmID, delta float64) error {
	key := PopularityKey()

	exists, err := p.cache.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		// Nothing cached to keep in sync; the next Top rebuilds.
		return nil
	}

	err = p.cache.Client().ZIncrBy(ctx, key, delta, strconv.Itoa(id.Int())).Err()
	if err != nil {
		return fmt.Errorf("failed to adjust film popularity: %w", err)
	}

	return nil
}
