package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shayrooms/hotel-booking-backend/internal/api"
	"github.com/shayrooms/hotel-booking-backend/internal/auth"
	"github.com/shayrooms/hotel-booking-backend/internal/booking"
	"github.com/shayrooms/hotel-booking-backend/internal/config"
	"github.com/shayrooms/hotel-booking-backend/internal/event"
	"github.com/shayrooms/hotel-booking-backend/internal/invoice"
	"github.com/shayrooms/hotel-booking-backend/internal/payment"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/mail"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/storage"
	"github.com/shayrooms/hotel-booking-backend/internal/room"
	"github.com/shayrooms/hotel-booking-backend/internal/task"
	"github.com/shayrooms/hotel-booking-backend/internal/user"
)

// Background dispatcher sizing. Side effects (invoice generation, email,
// events) are small and short; a modest pool keeps ordering pressure low.
const (
	dispatcherWorkers   = 4
	dispatcherQueueSize = 256
	dispatcherTimeout   = 30 * time.Second
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Dispatcher *task.Dispatcher
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, store *storage.LocalStorage) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	dispatcher := task.NewDispatcher(dispatcherWorkers, dispatcherQueueSize, dispatcherTimeout)

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
	})

	var events event.Publisher = event.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		events = event.NewAMQPPublisher(cfg.RabbitMQURL)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Room Module
	roomRepo := room.NewPgxRepository(pool)
	ledger := room.NewPgxLedger(pool)
	roomService := room.NewService(roomRepo, ledger, store)

	// Booking Module. The invoice service depends on bookings, so invoice
	// generation is injected as a closure bound after both services exist.
	var invoiceService invoice.Service
	issueInvoice := func(ctx context.Context, bookingID, userID string) error {
		_, err := invoiceService.Generate(ctx, bookingID, userID)
		return err
	}
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, roomService, ledger, dispatcher, mailer, issueInvoice, events)

	// Invoice Module
	invoiceRepo := invoice.NewPgxRepository(pool)
	invoiceService = invoice.NewService(invoiceRepo, bookingService, store, mailer, cfg.TaxRate, cfg.Currency)

	// Payment Module
	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentService := payment.NewService(gateway, cfg.RazorpayKeySecret, cfg.Currency)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		RoomService:     roomService,
		BookingService:  bookingService,
		PaymentService:  paymentService,
		InvoiceService:  invoiceService,
		JWTManager:      jwtManager,
		StorageBasePath: store.BasePath(),
		RateLimit:       cfg.RateLimit,
		Redis:           rdb,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Dispatcher: dispatcher,
	}, nil
}
