package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
)

const cacheTTL = 30 * time.Minute

type ListingRedisCache struct {
	cli    *redis.Client
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewListingRedisCache(client *redis.Client, tracer trace.Tracer, logger *logrus.Logger) *ListingRedisCache {
	return &ListingRedisCache{
		cli:    client,
		logger: logger,
		tracer: tracer,
	}
}

// Check connection function
func (cache *ListingRedisCache) Ping() {
	val, _ := cache.cli.Ping().Result()
	cache.logger.Println(val)
}

func (cache *ListingRedisCache) PostListing(ctx context.Context, listing *domain.Listing) error {
	ctx, span := cache.tracer.Start(ctx, "ListingRedisCache.PostListing")
	defer span.End()

	jsonValue, err := json.Marshal(listing)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = cache.cli.Set(constructListingKey(listing.ID.Hex()), jsonValue, cacheTTL).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Println(err)
		return err
	}
	return nil
}

func (cache *ListingRedisCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, span := cache.tracer.Start(ctx, "ListingRedisCache.GetListing")
	defer span.End()

	jsonValue, err := cache.cli.Get(constructListingKey(id)).Result()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var listing domain.Listing
	err = json.Unmarshal([]byte(jsonValue), &listing)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Println(err)
		return nil, err
	}

	return &listing, nil
}

func (cache *ListingRedisCache) PostSearchResults(ctx context.Context, key string, listings domain.Listings) error {
	ctx, span := cache.tracer.Start(ctx, "ListingRedisCache.PostSearchResults")
	defer span.End()

	jsonValue, err := json.Marshal(listings)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Println(err)
		return err
	}

	err = cache.cli.Set(constructSearchKey(key), jsonValue, cacheTTL).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Println(err)
		return err
	}
	return nil
}

func (cache *ListingRedisCache) GetSearchResults(ctx context.Context, key string) (domain.Listings, error) {
	ctx, span := cache.tracer.Start(ctx, "ListingRedisCache.GetSearchResults")
	defer span.End()

	jsonValue, err := cache.cli.Get(constructSearchKey(key)).Result()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var listings domain.Listings
	err = json.Unmarshal([]byte(jsonValue), &listings)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Println(err)
		return nil, err
	}

	return listings, nil
}

// InvalidateListing drops a listing after its ledger changes, so searches
// do not offer dates that were just booked.
func (cache *ListingRedisCache) InvalidateListing(ctx context.Context, id string) error {
	ctx, span := cache.tracer.Start(ctx, "ListingRedisCache.InvalidateListing")
	defer span.End()

	result := cache.cli.Del(constructListingKey(id))
	if result.Err() != nil {
		span.SetStatus(codes.Error, result.Err().Error())
		cache.logger.Println(result.Err())
		return result.Err()
	}
	return nil
}

// InvalidateSearches drops every cached search result. Any ledger change
// can move a listing in or out of a date-filtered search, so the whole
// result set is stale.
func (cache *ListingRedisCache) InvalidateSearches(ctx context.Context) error {
	ctx, span := cache.tracer.Start(ctx, "ListingRedisCache.InvalidateSearches")
	defer span.End()

	keys, err := cache.cli.Keys(constructSearchKey("*")).Result()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Println(err)
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := cache.cli.Del(keys...).Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		cache.logger.Println(err)
		return err
	}
	return nil
}
