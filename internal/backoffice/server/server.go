package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/medikart/backoffice/internal/backoffice/config"
	"github.com/medikart/backoffice/internal/backoffice/handlers"
	"github.com/medikart/backoffice/internal/backoffice/middleware"
	"github.com/medikart/backoffice/internal/backoffice/repository"
	"github.com/medikart/backoffice/internal/backoffice/service"
)

// Server represents the HTTP server
type Server struct {
	cfg        *config.Config
	repo       repository.Repository
	notifier   *service.Notifier
	sweeper    *service.Sweeper
	handler    *handlers.Handler
	httpServer *http.Server
}

// NewServer creates a new server
func NewServer(cfg *config.Config) *Server {
	repo := repository.NewPostgresRepository(cfg.DatabaseURI)
	notifier := service.NewNotifier(cfg.NotifierAddress)
	sweeper := service.NewSweeper(repo)
	handler := handlers.NewHandler(repo, notifier, cfg.JWTSecret, cfg.FreeDeliveryThreshold, cfg.DeliveryFee)

	return &Server{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		sweeper:  sweeper,
		handler:  handler,
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	// Initialize repository
	if err := s.repo.InitDB(s.cfg.DatabaseURI); err != nil {
		return err
	}

	// Start background housekeeping
	s.sweeper.Start()

	// Create router
	r := chi.NewRouter()

	// Basic middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/staff/register", s.handler.RegisterStaff)
		r.Post("/staff/login", s.handler.LoginStaff)
		r.Post("/staff/password/forgot", s.handler.ForgotPassword)
		r.Post("/staff/password/reset", s.handler.ResetPassword)

		// Protected routes
		r.Group(func(r chi.Router) {
			jwtConfig := &middleware.JWTConfig{
				SecretKey: s.cfg.JWTSecret,
				Repo:      s.repo,
			}
			r.Use(middleware.AuthMiddleware(jwtConfig))

			r.Post("/customers", s.handler.CreateCustomer)
			r.Get("/customers/{id}", s.handler.GetCustomer)

			r.Post("/orders", s.handler.CreateOrder)
			r.Get("/orders", s.handler.GetOrders)
			r.Get("/orders/{number}", s.handler.GetOrder)
			r.Post("/orders/{number}/status", s.handler.UpdateOrderStatus)

			r.Post("/estimates", s.handler.CreateEstimate)
			r.Post("/estimates/{id}/convert", s.handler.ConvertEstimate)
			r.Get("/invoices/{id}", s.handler.GetInvoice)
			r.Post("/invoices/{id}/payments", s.handler.RecordPayment)

			r.Post("/loyalty/enroll", s.handler.Enroll)
			r.Get("/loyalty/memberships/{id}", s.handler.GetMembership)
			r.Post("/loyalty/memberships/{id}/events", s.handler.ApplyLoyaltyEvent)

			r.Post("/timecards/clock-in", s.handler.ClockIn)
			r.Post("/timecards/{id}/clock-out", s.handler.ClockOut)
			r.Get("/timecards/{id}", s.handler.GetTimecard)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/loyalty/programs", s.handler.CreateProgram)
			})
		})
	})

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:    s.cfg.RunAddress,
		Handler: r,
	}

	// Start server
	log.Printf("Starting server on %s", s.cfg.RunAddress)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Shutdown HTTP server
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}

	// Stop background housekeeping
	if s.sweeper != nil {
		s.sweeper.Stop()
	}

	// Close repository
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			return err
		}
	}

	return nil
}
