package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
)

type SearchService struct {
	store  domain.ListingStore
	cache  domain.ListingCache
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewSearchService(store domain.ListingStore, cache domain.ListingCache, tracer trace.Tracer, logger *logrus.Logger) *SearchService {
	return &SearchService{
		store:  store,
		cache:  cache,
		tracer: tracer,
		logger: logger,
	}
}

// Search loads the catalog, applies the filter spec and optionally ranks
// the result. Results are served from the cache when an identical search
// was answered recently.
func (service *SearchService) Search(ctx context.Context, spec domain.FilterSpec, ranked bool) (domain.Listings, error) {
	ctx, span := service.tracer.Start(ctx, "SearchService.Search")
	defer span.End()

	if err := spec.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	key := searchKey(spec, ranked)
	if service.cache != nil {
		if cached, err := service.cache.GetSearchResults(ctx, key); err == nil {
			service.logger.Debugf("search cache hit: %s", key)
			return cached, nil
		}
	}

	catalog, err := service.store.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	matched, err := Filter(catalog, spec)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if ranked {
		matched = Rank(matched)
	}

	if service.cache != nil {
		if err := service.cache.PostSearchResults(ctx, key, matched); err != nil {
			service.logger.Warnf("caching search results failed: %v", err)
		}
	}

	return matched, nil
}

func (service *SearchService) GetAll(ctx context.Context) (domain.Listings, error) {
	ctx, span := service.tracer.Start(ctx, "SearchService.GetAll")
	defer span.End()

	return service.store.GetAll(ctx)
}

func (service *SearchService) GetListing(ctx context.Context, id primitive.ObjectID) (*domain.Listing, error) {
	ctx, span := service.tracer.Start(ctx, "SearchService.GetListing")
	defer span.End()

	if service.cache != nil {
		if cached, err := service.cache.GetListing(ctx, id.Hex()); err == nil {
			service.logger.Debugf("listing cache hit: %s", id.Hex())
			return cached, nil
		}
	}

	listing, err := service.store.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.PostListing(ctx, listing); err != nil {
			service.logger.Warnf("caching listing failed: %v", err)
		}
	}

	return listing, nil
}

// CreateListing validates and ingests one catalog entry.
func (service *SearchService) CreateListing(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	ctx, span := service.tracer.Start(ctx, "SearchService.CreateListing")
	defer span.End()

	if err := listing.ValidateListing(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	created, err := service.store.Insert(ctx, listing)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return created, nil
}
