package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"roomshare-go/internal/auth"
	"roomshare-go/internal/config"
	"roomshare-go/internal/service"
)

type Server struct {
	cfg             *config.Config
	db              *gorm.DB
	jwt             *auth.JWTManager
	homes           *service.HomeService
	bills           *service.BillService
	createValidator *gojsonschema.Schema
	updateValidator *gojsonschema.Schema
}

func NewServer(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(logging())
	r.Use(metrics())

	createSchema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(billCreateSchema))
	if err != nil {
		panic(err)
	}
	updateSchema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(billUpdateSchema))
	if err != nil {
		panic(err)
	}

	homes := service.NewHomeService(db)
	s := &Server{
		cfg:             cfg,
		db:              db,
		jwt:             auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour),
		homes:           homes,
		bills:           service.NewBillService(db, homes),
		createValidator: createSchema,
		updateValidator: updateSchema,
	}

	// Auth
	r.POST("/v1/auth/register", s.authRegister)
	r.POST("/v1/auth/login", s.authLogin)

	// Protected Routes (User Token)
	authorized := r.Group("/v1")
	authorized.Use(AuthMiddleware(s.jwt))
	{
		authorized.PUT("/user", s.updateProfile)

		authorized.POST("/homes", s.createHome)
		authorized.POST("/homes/join", s.joinHome)
		authorized.POST("/homes/leave", s.leaveHome)
		authorized.GET("/homes/members", s.listHomeMembers)

		authorized.GET("/bills/outstanding", s.listOutstandingBills)
		authorized.GET("/bills/created", s.listCreatedBills)
		authorized.POST("/bills", s.createBill)
		authorized.PUT("/bills/:id", s.updateBill)
		authorized.DELETE("/bills/:id", s.deleteBill)
		authorized.GET("/bills/:id/shares", s.listBillShares)
		authorized.GET("/bills/:id/payer-info", s.getPayerInfo)
		authorized.PUT("/bills/:id/update-payment-status", s.updatePaymentStatus)
	}

	r.GET("/metrics", metricsHandler())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

// serviceError maps service failures onto status codes. Unknown errors get a
// generic 500 body; the cause stays in the server log.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNotInHome):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(403, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(500, gin.H{"error": "internal_error"})
	}
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
