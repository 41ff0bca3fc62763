package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "los-backend/internal/adapter/http"
	idemp "los-backend/internal/adapter/middleware"
	"los-backend/internal/adapter/repository/mysql"
	"los-backend/internal/config"
	domainCredit "los-backend/internal/domain/credit"
	"los-backend/internal/domain/event"
	"los-backend/internal/infrastructure/cache"
	"los-backend/internal/infrastructure/db"
	"los-backend/internal/infrastructure/logging"
	"los-backend/internal/infrastructure/messaging"
	"los-backend/internal/infrastructure/metrics"
	"los-backend/internal/usecase/approval"
	"los-backend/internal/usecase/credit"
	"los-backend/internal/usecase/disbursement"
	"los-backend/internal/usecase/loan"
	"los-backend/internal/usecase/product"
	"los-backend/pkg/id"
)

type publisher interface {
	event.Publisher
	Close() error
}

func main() {
	cfg := config.Load()
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	gdb, err := db.OpenGorm(cfg.MySQLDSN(), logging.GormLevel(cfg.GormLogLevel))
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := mysql.AutoMigrate(gdb); err != nil {
			return err
		}
	}
	if cfg.SeedProducts {
		if err := mysql.SeedDefaultProducts(ctx, gdb); err != nil {
			return err
		}
	}

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	pub, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logger.Warn("closing event publisher", "error", err)
		}
	}()

	m := metrics.New()
	notifier := event.NewNotifier(m.WrapPublisher(pub), logger, cfg.PublishTimeout)
	ids := id.UUID{}

	loans := mysql.NewLoanRepository(gdb)
	products := mysql.NewProductRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	routes := httpadp.Routes{
		Health: httpadp.NewHandler(cfg.EventBroker),
		Loans: httpadp.NewLoanHandler(loan.NewUsecase(loans, products, tx,
			loan.WithIDGenerator(ids),
			loan.WithLogger(logger),
			loan.WithNotifier(notifier),
		)),
		Approvals: httpadp.NewApprovalHandler(approval.NewUsecase(loans, mysql.NewApprovalRepository(gdb), tx,
			approval.WithIDGenerator(ids),
			approval.WithLogger(logger),
			approval.WithNotifier(notifier),
		)),
		Disbursements: httpadp.NewDisbursementHandler(disbursement.NewUsecase(loans, mysql.NewDisbursementRepository(gdb), tx,
			disbursement.WithProcessor(disbursement.SimulatedProcessor{Delay: cfg.DisbursementDelay}),
			disbursement.WithTimeout(cfg.DisbursementTimeout),
			disbursement.WithIDGenerator(ids),
			disbursement.WithLogger(logger),
			disbursement.WithNotifier(notifier),
		)),
		Credit: httpadp.NewCreditHandler(credit.NewUsecase(domainCredit.NewEngine(),
			credit.WithIDGenerator(ids),
			credit.WithLogger(logger),
			credit.WithObserver(m),
		)),
		Products: httpadp.NewProductHandler(product.NewUsecase(products)),
		Metrics:  m.Handler(),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	routes.Register(e, idemp.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, logger))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", "addr", addr, "event_broker", cfg.EventBroker)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (publisher, error) {
	switch cfg.EventBroker {
	case config.BrokerKafka:
		return messaging.NewKafkaPublisher(cfg.KafkaBrokers, logger), nil
	case config.BrokerRabbitMQ:
		p, err := messaging.NewRabbitPublisher(cfg.RabbitMQURL, messaging.DefaultExchange, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return messaging.NewLogPublisher(logger), nil
	}
}
