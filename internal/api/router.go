package api

import (
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/shayrooms/hotel-booking-backend/internal/auth"
	"github.com/shayrooms/hotel-booking-backend/internal/booking"
	bookingHttp "github.com/shayrooms/hotel-booking-backend/internal/booking/http"
	"github.com/shayrooms/hotel-booking-backend/internal/config"
	"github.com/shayrooms/hotel-booking-backend/internal/invoice"
	invoiceHttp "github.com/shayrooms/hotel-booking-backend/internal/invoice/http"
	"github.com/shayrooms/hotel-booking-backend/internal/payment"
	paymentHttp "github.com/shayrooms/hotel-booking-backend/internal/payment/http"
	"github.com/shayrooms/hotel-booking-backend/internal/room"
	roomHttp "github.com/shayrooms/hotel-booking-backend/internal/room/http"
	"github.com/shayrooms/hotel-booking-backend/internal/user"
	userHttp "github.com/shayrooms/hotel-booking-backend/internal/user/http"
)

// Config holds everything the router needs to assemble middleware and routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	RoomService    room.Service
	BookingService booking.Service
	PaymentService payment.Service
	InvoiceService invoice.Service

	JWTManager *auth.JWTManager

	// StorageBasePath is the local directory generated artifacts live under;
	// invoice PDFs and room images are served straight from it.
	StorageBasePath string

	RateLimit config.RateLimitConfig
	Redis     *redis.Client // nil disables rate limiting
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth, rate
// limiting) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user is an admin.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Brute-force protection on login, abuse protection on the payment routes.
	loginLimiter := RateLimiter("login", cfg.RateLimit, cfg.Redis)
	paymentLimiter := RateLimiter("payment", cfg.RateLimit, cfg.Redis)

	// Generated artifacts served as static files.
	r.Static("/invoices", filepath.Join(cfg.StorageBasePath, "invoices"))
	r.Static("/roomimages", filepath.Join(cfg.StorageBasePath, "rooms"))

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	invoiceHandler := invoiceHttp.NewHandler(cfg.InvoiceService)

	// Register API routes
	apiGroup := r.Group("/api")
	{
		userHttp.RegisterRoutes(apiGroup, userHandler, authMiddleware, loginLimiter)
		roomHttp.RegisterRoutes(apiGroup, roomHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(apiGroup, bookingHandler, authMiddleware, adminMiddleware)
		paymentHttp.RegisterRoutes(apiGroup, paymentHandler, paymentLimiter)
		invoiceHttp.RegisterRoutes(apiGroup, invoiceHandler)
	}

	return r
}
