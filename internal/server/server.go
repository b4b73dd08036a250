package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/merchhaus/backoffice/internal/accesspermission"
	permdomain "github.com/merchhaus/backoffice/internal/accesspermission/domain"
	"github.com/merchhaus/backoffice/internal/apikey"
	apikeydomain "github.com/merchhaus/backoffice/internal/apikey/domain"
	"github.com/merchhaus/backoffice/internal/appmodules"
	"github.com/merchhaus/backoffice/internal/auth"
	authdomain "github.com/merchhaus/backoffice/internal/auth/domain"
	"github.com/merchhaus/backoffice/internal/auth/session"
	"github.com/merchhaus/backoffice/internal/campaign"
	campaigndomain "github.com/merchhaus/backoffice/internal/campaign/domain"
	"github.com/merchhaus/backoffice/internal/company"
	companydomain "github.com/merchhaus/backoffice/internal/company/domain"
	"github.com/merchhaus/backoffice/internal/config"
	"github.com/merchhaus/backoffice/internal/events"
	"github.com/merchhaus/backoffice/internal/orderid"
	"github.com/merchhaus/backoffice/internal/pendingorder"
	orderdomain "github.com/merchhaus/backoffice/internal/pendingorder/domain"
	"github.com/merchhaus/backoffice/internal/privacyrule"
	privacydomain "github.com/merchhaus/backoffice/internal/privacyrule/domain"
	"github.com/merchhaus/backoffice/internal/ratelimit"
	"github.com/merchhaus/backoffice/internal/user"
	userdomain "github.com/merchhaus/backoffice/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	orderid.Module,
	events.Module,
	ratelimit.Module,
	auth.Module,
	user.Module,
	company.Module,
	apikey.Module,
	accesspermission.Module,
	privacyrule.Module,
	campaign.Module,
	pendingorder.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(metricsMiddleware(newHTTPMetrics()))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	sessions     *session.Manager
	authSvc      authdomain.Service
	userSvc      userdomain.Service
	companySvc   companydomain.Service
	campaignSvc  campaigndomain.Service
	permSvc      permdomain.Service
	privacySvc   privacydomain.Service
	orderSvc     orderdomain.Service
	orderRepo    orderdomain.Repository
	apiKeySvc    apikeydomain.Service
	orderLimiter *ratelimit.OrderSubmitLimiter
}

type Params struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Sessions     *session.Manager
	AuthSvc      authdomain.Service
	UserSvc      userdomain.Service
	CompanySvc   companydomain.Service
	CampaignSvc  campaigndomain.Service
	PermSvc      permdomain.Service
	PrivacySvc   privacydomain.Service
	OrderSvc     orderdomain.Service
	OrderRepo    orderdomain.Repository
	APIKeySvc    apikeydomain.Service
	OrderLimiter *ratelimit.OrderSubmitLimiter `optional:"true"`
}

func NewServer(p Params) *Server {
	s := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		log:          p.Log.Named("http"),
		genID:        p.GenID,
		sessions:     p.Sessions,
		authSvc:      p.AuthSvc,
		userSvc:      p.UserSvc,
		companySvc:   p.CompanySvc,
		campaignSvc:  p.CampaignSvc,
		permSvc:      p.PermSvc,
		privacySvc:   p.PrivacySvc,
		orderSvc:     p.OrderSvc,
		orderRepo:    p.OrderRepo,
		apiKeySvc:    p.APIKeySvc,
		orderLimiter: p.OrderLimiter,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.Logout)
	authGroup.GET("/me", s.Authenticated(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.Authenticated())

	// -------- Users --------
	api.GET("/users", s.CheckPermissions(appmodules.Users), s.ListUsers)
	api.POST("/users", s.CheckPermissions(appmodules.Users), s.CreateUser)
	api.GET("/users/:id", s.LoadUserTarget(), s.CheckPermissions(appmodules.Users), s.GetUser)
	api.PATCH("/users/:id", s.LoadUserTarget(), s.CheckPermissions(appmodules.Users), s.UpdateUser)
	api.DELETE("/users/:id", s.LoadUserTarget(), s.CheckPermissions(appmodules.Users), s.DeleteUser)

	// -------- Companies --------
	api.GET("/companies", s.CheckPermissions(appmodules.Companies), s.ListCompanies)
	api.POST("/companies", s.CheckPermissions(appmodules.Companies), s.CreateCompany)
	api.GET("/companies/:id", s.LoadCompanyTarget(), s.CheckPermissions(appmodules.Companies), s.GetCompany)
	api.PATCH("/companies/:id", s.LoadCompanyTarget(), s.CheckPermissions(appmodules.Companies), s.UpdateCompany)
	api.DELETE("/companies/:id", s.LoadCompanyTarget(), s.CheckPermissions(appmodules.Companies), s.DeleteCompany)

	// -------- Campaigns --------
	api.GET("/campaigns", s.CheckPermissions(appmodules.Campaigns), s.ListCampaigns)
	api.POST("/campaigns", s.CheckPermissions(appmodules.Campaigns), s.UpsertCampaign)
	api.GET("/campaigns/:id", s.LoadCampaignTarget(), s.CheckPermissions(appmodules.Campaigns), s.GetCampaign)
	api.PATCH("/campaigns/:id", s.LoadCampaignTarget(), s.CheckPermissions(appmodules.Campaigns), s.UpdateCampaign)
	api.DELETE("/campaigns/:id", s.LoadCampaignTarget(), s.CheckPermissions(appmodules.Campaigns), s.DeleteCampaign)
	api.PUT("/campaigns/:id/order-limit", s.LoadCampaignTarget(), s.CheckPermissions(appmodules.Campaigns), s.SetCampaignOrderLimit)

	// -------- Campaign addresses --------
	api.GET("/campaigns/:id/addresses", s.LoadCampaignTarget(), s.CheckPermissions(appmodules.CampaignAddresses), s.ListCampaignAddresses)
	api.POST("/campaigns/:id/addresses", s.LoadCampaignTarget(), s.CheckPermissions(appmodules.CampaignAddresses), s.AddCampaignAddress)
	api.DELETE("/campaigns/:id/addresses/:addressId", s.LoadCampaignTarget(), s.CheckPermissions(appmodules.CampaignAddresses), s.DeleteCampaignAddress)

	// -------- Access permissions --------
	api.GET("/access-permissions", s.CheckPermissions(appmodules.AccessPermissions), s.ListAccessPermissions)
	api.POST("/access-permissions", s.CheckPermissions(appmodules.AccessPermissions), s.UpsertAccessPermission)
	api.DELETE("/access-permissions/:id", s.CheckPermissions(appmodules.AccessPermissions), s.DeleteAccessPermission)

	// -------- Privacy rules --------
	api.GET("/privacy-rules", s.CheckPermissions(appmodules.PrivacyRules), s.ListPrivacyRules)
	api.POST("/privacy-rules", s.CheckPermissions(appmodules.PrivacyRules), s.CreatePrivacyRule)
	api.PATCH("/privacy-rules/:id", s.CheckPermissions(appmodules.PrivacyRules), s.UpdatePrivacyRule)
	api.DELETE("/privacy-rules/:id", s.CheckPermissions(appmodules.PrivacyRules), s.DeletePrivacyRule)

	// -------- Pending orders --------
	api.GET("/pending-orders", s.CheckPermissions(appmodules.PendingOrders), s.ListPendingOrders)
	api.POST("/pending-orders", s.CheckPermissions(appmodules.PendingOrders), s.OrderSubmitRateLimit(), s.InsertPendingOrders)
	api.POST("/pending-orders/catalogue", s.CheckPermissions(appmodules.PendingOrders), s.OrderSubmitRateLimit(), s.InsertCatalogueOrders)
	api.POST("/pending-orders/duplicate", s.CheckPermissions(appmodules.PendingOrders), s.DuplicatePendingOrders)
	api.GET("/pending-orders/:id", s.LoadPendingOrderTarget(), s.CheckPermissions(appmodules.PendingOrders), s.GetPendingOrder)
	api.PATCH("/pending-orders/:id", s.LoadPendingOrderTarget(), s.CheckPermissions(appmodules.PendingOrders), s.UpdatePendingOrder)
	api.DELETE("/pending-orders/:id", s.LoadPendingOrderTarget(), s.CheckPermissions(appmodules.PendingOrders), s.DeletePendingOrder)

	// -------- API keys --------
	api.GET("/api-keys", s.CheckPermissions(appmodules.APIKeys), s.ListAPIKeys)
	api.POST("/api-keys", s.CheckPermissions(appmodules.APIKeys), s.CreateAPIKey)
	api.DELETE("/api-keys/:id", s.CheckPermissions(appmodules.APIKeys), s.RevokeAPIKey)
}

// OrderSubmitRateLimit throttles order creation per user. API-key callers
// are keyed by their key id.
func (s *Server) OrderSubmitRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.orderLimiter == nil {
			c.Next()
			return
		}

		var key string
		if user, ok := currentUser(c); ok {
			key = user.ID.String()
		} else if apiKey, _, ok := currentAPIKey(c); ok {
			key = "key:" + apiKey.ID.String()
		}
		if key == "" {
			c.Next()
			return
		}

		result, err := s.orderLimiter.Allow(c.Request.Context(), key)
		if err != nil {
			s.log.Warn("order submit rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !result.Allowed {
			c.Header("Retry-After", result.RetryAfter.Round(time.Second).String())
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
