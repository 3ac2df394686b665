package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourdesk/internal/cache"
	"tourdesk/internal/config"
	"tourdesk/internal/gateway"
	api "tourdesk/internal/http"
	"tourdesk/internal/http/handlers"
	"tourdesk/internal/idgen"
	"tourdesk/internal/mailer"
	"tourdesk/internal/repositories"
	"tourdesk/internal/scheduler"
	"tourdesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := config.ConnectDB(env)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	travelers := repositories.TravelerRepository{DB: db}
	agents := repositories.AgentRepository{DB: db}
	bookings := repositories.BookingRepository{DB: db}
	emis := repositories.EmiRepository{DB: db}
	payments := repositories.PaymentRepository{DB: db}
	transactions := repositories.TransactionRepository{DB: db}
	users := repositories.UserRepository{DB: db}
	ids := idgen.NewGenerator(db)

	var mail mailer.Mailer = mailer.LogMailer{}
	if env.SMTPHost != "" {
		mail = mailer.SMTPMailer{
			Host:     env.SMTPHost,
			Port:     env.SMTPPort,
			Username: env.SMTPUser,
			Password: env.SMTPPass,
			From:     env.MailFrom,
		}
	}

	var guard cache.OnceGuard = cache.NopGuard{}
	if env.RedisAddr != "" {
		guard = cache.RedisGuard{Client: redis.NewClient(&redis.Options{Addr: env.RedisAddr})}
	}

	gw := gateway.NewHTTPClient(env.GatewayBaseURL, env.GatewayKeyID, env.GatewayKeySecret)

	bookingSvc := services.BookingService{
		Bookings: bookings, Travelers: travelers, Agents: agents,
		Emis: emis, Transactions: transactions, IDs: ids, Mail: mail,
	}
	emiSvc := services.EmiService{Emis: emis, Bookings: bookings, IDs: ids}
	paymentSvc := services.PaymentService{
		Payments: payments, Emis: emis, Bookings: bookings, Travelers: travelers,
		Transactions: transactions, IDs: ids, Gateway: gw, Guard: guard, Mail: mail,
		FrontendURL: env.FrontendURL, BackendURL: env.BackendURL,
	}
	refundSvc := services.RefundService{
		Bookings: bookings, Travelers: travelers, Agents: agents,
		Transactions: transactions, IDs: ids,
		RefundCommission: env.RefundCommission,
	}

	reconciler := services.Reconciler{
		Bookings: bookings, Emis: emis, Travelers: travelers, Agents: agents,
		Payments: payments, Gateway: gw, Mail: mail,
		AgentCommission:   env.AgentCommission,
		AbandonedOrderTTL: env.AbandonedOrderTTL,
		BackendURL:        env.BackendURL,
	}

	hs := api.Handlers{
		System:    handlers.SystemHandler{DB: db},
		Auth:      handlers.AuthHandler{Users: services.UserService{Users: users, IDs: ids, JWTSecret: env.JWTSecret}},
		Travelers: handlers.TravelerHandler{Travelers: services.TravelerService{Travelers: travelers, IDs: ids, Mail: mail}},
		Agents:    handlers.AgentHandler{Agents: services.AgentService{Agents: agents, IDs: ids, Mail: mail}},
		Bookings:  handlers.BookingHandler{Bookings: bookingSvc, Emis: emiSvc},
		Payments:  handlers.PaymentHandler{Payments: paymentSvc, Refunds: refundSvc},
		Transactions: handlers.TransactionHandler{
			Transactions: services.TransactionService{Transactions: transactions},
		},
		Docs: handlers.DocsHandler{
			Docs: services.DocsService{Transactions: transactions, Bookings: bookings, Emis: emis, Travelers: travelers},
		},
	}

	r := api.NewRouter(env, hs)

	sweepCtx, stopSweeps := context.WithCancel(context.Background())
	defer stopSweeps()
	go scheduler.Scheduler{
		Sweeps:           reconciler,
		PromoteInterval:  env.PromoteInterval,
		ReminderInterval: env.ReminderInterval,
		PurgeInterval:    env.PurgeInterval,
	}.Run(sweepCtx)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	stopSweeps()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	log.Println("server stopped cleanly")
}
