package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	api "github.com/kubev2v/transcription-service/api/v1alpha1"
	"github.com/kubev2v/transcription-service/internal/client"
	"github.com/kubev2v/transcription-service/internal/config"
	handlers "github.com/kubev2v/transcription-service/internal/handlers/v1alpha1"
	"github.com/kubev2v/transcription-service/internal/service"
	"github.com/kubev2v/transcription-service/internal/store"
	"github.com/kubev2v/transcription-service/pkg/blob"
	"github.com/kubev2v/transcription-service/pkg/metrics"
	"github.com/kubev2v/transcription-service/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 30 * time.Second
	readHeaderTimeout       = 10 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

// New returns a new instance of a transcription server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, fmt.Sprintf("API Error: %s", message), statusCode)
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")
	swagger, err := api.GetSwagger()
	if err != nil {
		return fmt.Errorf("failed to load swagger spec: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
	}

	blobStore, err := blob.NewMinioStore(
		blob.WithEndpoint(s.cfg.Service.S3.Endpoint),
		blob.WithBucket(s.cfg.Service.S3.Bucket),
		blob.WithAccessKey(s.cfg.Service.S3.AccessKey),
		blob.WithSecretKey(s.cfg.Service.S3.SecretKey),
		blob.WithSSL(s.cfg.Service.S3.UseSSL),
		blob.WithPublicURL(s.cfg.Service.S3.PublicURL),
	)
	if err != nil {
		return fmt.Errorf("failed to create blob store: %w", err)
	}

	processor := client.NewAssemblyAIClient(
		s.cfg.Service.Processor.BaseURL,
		s.cfg.Service.Processor.APIKey,
		s.cfg.Service.Processor.Timeout,
	)

	polling := s.cfg.Service.Polling
	pollerOpts := service.PollerOptions{
		Interval:         polling.Interval,
		Jitter:           polling.Jitter,
		MaxAttempts:      polling.MaxAttempts,
		MaxWait:          polling.MaxWait,
		MaxStatusRetries: polling.MaxStatusRetries,
		RetryDelay:       polling.RetryDelay,
	}
	if err := pollerOpts.Validate(); err != nil {
		return fmt.Errorf("invalid polling configuration: %w", err)
	}
	transcriptionService := service.NewTranscriptionService(processor, s.store,
		service.WithPollerOptions(pollerOpts),
	)

	h := handlers.NewServiceHandler(
		transcriptionService,
		service.NewUploadService(blobStore, nil),
		service.NewHealthService(s.store),
	)

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegister(prometheus.DefaultRegisterer)

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		chiMiddleware.RequestID,
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	router.Group(func(r chi.Router) {
		r.Use(oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts))
		h.RegisterTranscriptionRoutes(r)
	})
	h.RegisterUploadRoutes(router)
	h.RegisterHealthRoutes(router)

	srv := http.Server{
		Addr:              s.cfg.Service.Address,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
