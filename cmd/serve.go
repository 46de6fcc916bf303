package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	authclient "github.com/vibast-solutions/lib-go-auth/client"
	authmiddleware "github.com/vibast-solutions/lib-go-auth/middleware"
	authlibservice "github.com/vibast-solutions/lib-go-auth/service"
	"github.com/vibast-solutions/ms-go-bridal/app/controller"
	grpcserver "github.com/vibast-solutions/ms-go-bridal/app/grpc"
	"github.com/vibast-solutions/ms-go-bridal/app/imageproc"
	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
	"github.com/vibast-solutions/ms-go-bridal/app/metrics"
	"github.com/vibast-solutions/ms-go-bridal/app/repository"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/app/session"
	"github.com/vibast-solutions/ms-go-bridal/app/types"
	"github.com/vibast-solutions/ms-go-bridal/config"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start both HTTP (Echo) and gRPC servers for the bridal service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type controllers struct {
	catalog     *controller.CatalogController
	plans       *controller.PlanController
	providers   *controller.ProviderController
	users       *controller.UserController
	favorites   *controller.FavoriteController
	inquiries   *controller.InquiryController
	maintenance *controller.MaintenanceController
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	ctx := context.Background()

	db := mustOpenDB(cfg)
	defer db.Close()

	redisClient := mustCreateRedis(ctx, cfg)
	defer redisClient.Close()

	store := mustCreateStore(ctx, cfg)
	images := imageproc.NewProcessor(cfg.Upload.MaxImageWidth, cfg.Upload.MaxImagePixels)

	planRepo := repository.NewPlanRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	planService := service.NewPlanService(planRepo, providerRepo, store, images, cfg.Storage, cfg.Upload)
	providerService := service.NewProviderService(providerRepo, planRepo, store, images, cfg.Storage)
	userService := service.NewUserService(userRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, planRepo)
	inquiryService := service.NewInquiryService(inquiryRepo, planRepo)
	maintenanceService := service.NewMaintenanceService(planRepo, providerRepo, store, cfg.Storage, cfg.Jobs)

	sessions := session.NewManager(
		session.NewRedisStore(redisClient, cfg.Session.TTL),
		cfg.Session.CookieName,
		cfg.Session.TTL,
		cfg.Session.Secure,
	)
	m := mapper.New(store, cfg.Storage)

	ctrls := controllers{
		catalog:     controller.NewCatalogController(),
		plans:       controller.NewPlanController(planService, favoriteService, m, cfg.Upload),
		providers:   controller.NewProviderController(providerService, inquiryService, sessions, m, cfg.Upload),
		users:       controller.NewUserController(userService, sessions),
		favorites:   controller.NewFavoriteController(favoriteService, m),
		inquiries:   controller.NewInquiryController(inquiryService),
		maintenance: controller.NewMaintenanceController(maintenanceService),
	}
	grpcPlanServer := grpcserver.NewServer(planService, m)

	authGRPCClient, err := authclient.NewGRPCClientFromAddr(ctx, cfg.InternalEndpoints.AuthGRPCAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize auth gRPC client")
	}
	defer authGRPCClient.Close()
	internalAuthService := authlibservice.NewInternalAuthService(authGRPCClient)
	echoInternalAuthMiddleware := authmiddleware.NewEchoInternalAuthMiddleware(internalAuthService)
	grpcInternalAuthMiddleware := authmiddleware.NewGRPCInternalAuthMiddleware(internalAuthService)

	e := setupHTTPServer(ctrls, sessions, echoInternalAuthMiddleware, cfg.App.ServiceName, cfg.Upload)
	grpcSrv, lis := setupGRPCServer(cfg, grpcPlanServer, grpcInternalAuthMiddleware, cfg.App.ServiceName)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	go func() {
		logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
		if err := grpcSrv.Serve(lis); err != nil {
			logrus.WithError(err).Fatal("gRPC server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}
	grpcSrv.GracefulStop()

	logrus.Info("Server stopped")
}

func setupHTTPServer(
	ctrls controllers,
	sessions *session.Manager,
	internalAuthMiddleware *authmiddleware.EchoInternalAuthMiddleware,
	appServiceName string,
	uploadCfg config.UploadConfig,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
				"request_id": v.RequestID,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(metrics.Middleware)
	e.Use(echomiddleware.Recover())
	e.Use(bodyLimit(uploadCfg))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))
	e.Use(sessions.Load)

	registerRoutes(e, ctrls, sessions, internalAuthMiddleware.RequireInternalAccess(appServiceName))

	return e
}

// bodyLimit caps request bodies before multipart parsing buffers them.
func bodyLimit(cfg config.UploadConfig) echo.MiddlewareFunc {
	if cfg.MaxBodyBytes <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomiddleware.BodyLimit(fmt.Sprintf("%dB", cfg.MaxBodyBytes))
}

func registerRoutes(e *echo.Echo, ctrls controllers, sessions *session.Manager, internalAccess echo.MiddlewareFunc) {
	e.GET("/health", ctrls.catalog.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/catalog/options", ctrls.catalog.Options)

	plans := e.Group("/plans")
	plans.GET("", ctrls.plans.SearchPlans)
	plans.GET("/:id", ctrls.plans.GetPlan)
	plans.POST("/:id/inquiries", ctrls.inquiries.CreateInquiry)

	e.GET("/providers/:id", ctrls.providers.GetPublicProfile)

	users := e.Group("/users")
	users.POST("/signup", ctrls.users.Signup)
	users.POST("/login", ctrls.users.Login)
	users.POST("/logout", ctrls.users.Logout)
	users.GET("/me", ctrls.users.Me, sessions.RequireUser)

	favorites := e.Group("/favorites", sessions.RequireUser)
	favorites.GET("", ctrls.favorites.ListFavorites)
	favorites.GET("/:plan_id", ctrls.favorites.GetFavorite)
	favorites.PUT("/:plan_id", ctrls.favorites.AddFavorite)
	favorites.DELETE("/:plan_id", ctrls.favorites.RemoveFavorite)

	provider := e.Group("/provider")
	provider.POST("/signup", ctrls.providers.Signup)
	provider.POST("/login", ctrls.providers.Login)
	provider.POST("/logout", ctrls.providers.Logout)

	account := provider.Group("", sessions.RequireProvider)
	account.GET("/profile", ctrls.providers.GetProfile)
	account.PATCH("/profile", ctrls.providers.UpdateProfile)
	account.PUT("/profile/image", ctrls.providers.ReplaceProfileImage)
	account.GET("/plans", ctrls.plans.ListProviderPlans)
	account.POST("/plans", ctrls.plans.CreatePlan)
	account.GET("/plans/:id", ctrls.plans.GetProviderPlan)
	account.PUT("/plans/:id", ctrls.plans.UpdatePlan)
	account.DELETE("/plans/:id", ctrls.plans.DeletePlan)
	account.POST("/plans/:id/images", ctrls.plans.AddPlanImages)
	account.GET("/inquiries", ctrls.providers.ListInquiries)

	internal := e.Group("/internal", internalAccess)
	internal.POST("/maintenance/orphan-sweep", ctrls.maintenance.SweepOrphanImages)
}

func setupGRPCServer(
	cfg *config.Config,
	planServer *grpcserver.Server,
	internalAuthMiddleware *authmiddleware.GRPCInternalAuthMiddleware,
	appServiceName string,
) (*grpc.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoveryInterceptor(),
			grpcserver.RequestIDInterceptor(),
			grpcserver.LoggingInterceptor(),
			internalAuthMiddleware.UnaryRequireInternalAccess(appServiceName),
		),
	)
	types.RegisterPlanCatalogServer(grpcSrv, planServer)

	return grpcSrv, lis
}
