package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanmaySingh007/StayFinder/domain"
	"github.com/TanmaySingh007/StayFinder/handlers"
	application "github.com/TanmaySingh007/StayFinder/service"
	"github.com/TanmaySingh007/StayFinder/startup/config"
	"github.com/TanmaySingh007/StayFinder/store"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Message,
	)

	return []byte(msg), nil
}

func initLogger() {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {

	initLogger()

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("stayfinder_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	listingStore, bookingStore := server.initStores(tracer)

	var cache domain.ListingCache
	if server.config.StayCacheHost != "" {
		redisClient := server.initRedisClient()
		redisCache := store.NewListingRedisCache(redisClient, tracer, Logger)
		redisCache.Ping()
		cache = redisCache
	}

	if err := store.SeedCatalog(ctx, listingStore); err != nil {
		Logger.Warnf("catalog seeding failed: %v", err)
	}

	notifier := application.NewHTTPNotifier(Logger, application.NewMailNotifier(Logger))
	searchService := application.NewSearchService(listingStore, cache, tracer, Logger)
	bookingService := application.NewBookingService(listingStore, bookingStore, cache, notifier, tracer, Logger)

	listingHandler := handlers.NewListingHandler(searchService, tracer, Logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, tracer, Logger)

	server.start(listingHandler, bookingHandler)
}

// initStores wires Mongo-backed stores when a database is configured and
// falls back to the in-memory stores for local runs.
func (server *Server) initStores(tracer trace.Tracer) (domain.ListingStore, domain.BookingStore) {
	if server.config.StayDBHost == "" {
		Logger.Info("STAY_DB_HOST not set, using in-memory stores")
		return store.NewListingInMemoryStore(), store.NewBookingInMemoryStore()
	}

	mongoClient := server.initMongoClient()
	return store.NewListingMongoDBStore(mongoClient, tracer), store.NewBookingMongoDBStore(mongoClient, tracer)
}

func (server *Server) initMongoClient() *mongo.Client {
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	client, err := store.GetClientWithHTTPConfig(server.config.StayDBHost, server.config.StayDBPort, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store.GetRedisClient(server.config.StayCacheHost, server.config.StayCachePort)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) start(listingHandler *handlers.ListingHandler, bookingHandler *handlers.BookingHandler) {
	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(handlers.ExtractTraceInfoMiddleware)
	bookingHandler.Init(router)
	listingHandler.Init(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: router,
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("stayfinder_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}
