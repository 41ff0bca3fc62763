package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"los-backend/internal/adapter/consumer"
	"los-backend/internal/config"
	"los-backend/internal/domain/event"
	"los-backend/internal/infrastructure/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if len(cfg.KafkaBrokers) == 0 {
		logger.Error("KAFKA_BROKERS is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := consumer.NotificationHandler(consumer.LogSender{Logger: logger}, logger)

	var (
		wg     sync.WaitGroup
		failed bool
		mu     sync.Mutex
	)
	for _, topic := range []string{event.TopicLoan, event.TopicDisbursement} {
		c := consumer.NewConsumer(cfg.KafkaBrokers, cfg.NotifierGroupID, topic, handler, logger)
		wg.Add(1)
		go func(topic string) {
			defer wg.Done()
			defer func() {
				if err := c.Close(); err != nil {
					logger.Warn("closing consumer", "topic", topic, "error", err)
				}
			}()
			if err := c.Start(ctx); err != nil {
				logger.Error("consumer failed", "topic", topic, "error", err)
				mu.Lock()
				failed = true
				mu.Unlock()
				stop()
			}
		}(topic)
	}
	wg.Wait()

	if failed {
		os.Exit(1)
	}
	logger.Info("notifier stopped")
}
