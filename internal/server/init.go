package server

import (
	"context"
	"log"
	"net/http"

	gcstorage "cloud.google.com/go/storage"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"omoide-api/internal/analysis"
	"omoide-api/internal/config"
	"omoide-api/internal/handlers"
	"omoide-api/internal/middleware"
	"omoide-api/internal/repository"
	"omoide-api/internal/router"
	"omoide-api/internal/services"
	"omoide-api/internal/storage"
)

// Services holds all initialized services for the application
type Services struct {
	Cache  *services.BlobCache
	Media  *services.MediaService
	Upload *services.UploadService
	Search *services.SearchService
	Albums *services.AlbumService
}

// InitServices initializes all application services based on configuration.
// Returns the initialized services or an error if initialization fails.
func InitServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	fileStorage, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mediaRepo := repository.NewMediaRepository(cfg.MetadataFilePath())
	albumRepo := repository.NewAlbumRepository(cfg.AlbumsFilePath())

	// The analysis collaborator is optional; without a region uploads keep
	// their original filenames and tag suggestions come back empty.
	var analyzer analysis.ImageAnalyzer
	if cfg.BedrockRegion != "" {
		bedrock, err := analysis.NewBedrockAnalyzer(ctx, cfg.BedrockRegion, cfg.BedrockModelID)
		if err != nil {
			log.Printf("⚠️  Failed to initialize image analysis, continuing without it: %v", err)
		} else {
			log.Printf("🤖 Image analysis enabled (model: %s)", cfg.BedrockModelID)
			analyzer = bedrock
		}
	}

	cache := services.NewBlobCache(cfg.CacheTTL, cfg.CacheCleanupInterval)

	limits := services.UploadLimits{
		MaxFiles:          cfg.MaxFilesPerUpload,
		MaxFileSize:       cfg.MaxFileSize,
		AllowedTypes:      append(append([]string{}, cfg.AllowedImageTypes...), cfg.AllowedVideoTypes...),
		CompressThreshold: cfg.CompressThreshold,
		MaxImageDimension: cfg.MaxImageDimension,
		JPEGQuality:       cfg.JPEGQuality,
	}

	return &Services{
		Cache:  cache,
		Media:  services.NewMediaService(mediaRepo, fileStorage, cache, analyzer),
		Upload: services.NewUploadService(fileStorage, mediaRepo, analyzer, limits),
		Search: services.NewSearchService(mediaRepo),
		Albums: services.NewAlbumService(albumRepo),
	}, nil
}

func initStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, error) {
	if cfg.StorageBackend == "gcs" {
		var opts []option.ClientOption
		if cfg.GCSCredentialsJSON != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.GCSCredentialsJSON)))
		} else if cfg.GCSCredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsPath))
		}

		client, err := gcstorage.NewClient(ctx, opts...)
		if err != nil {
			return nil, err
		}

		log.Printf("☁️  Using GCS storage (bucket: %s)", cfg.GCSBucketName)
		return storage.NewGCSStorage(client, cfg.GCSBucketName, cfg.GCSObjectPrefix), nil
	}

	log.Printf("💾 Using local storage (%s)", cfg.MediaPath)
	return storage.NewLocalStorage(cfg.MediaPath), nil
}

// CreateHandler creates an HTTP handler with all middleware applied
func CreateHandler(svcs *Services, cfg *config.Config) http.Handler {
	h := handlers.New(svcs.Media, svcs.Upload, svcs.Search, svcs.Albums)

	mux := router.Setup(h)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	wrappedHandler := limiter.Limit(mux)
	if len(cfg.APIKeys) > 0 {
		wrappedHandler = middleware.APIKeyAuth(cfg.APIKeys)(wrappedHandler)
	}
	wrappedHandler = middleware.CORS(wrappedHandler, cfg.AllowedOrigins)
	wrappedHandler = middleware.RequestID(wrappedHandler)
	wrappedHandler = middleware.Logger(wrappedHandler)

	return wrappedHandler
}
