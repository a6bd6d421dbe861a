package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Group timezones must resolve even without a system zone database.
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"github.com/ktr1133/chorewheel/internal/config"
	"github.com/ktr1133/chorewheel/internal/database"
	"github.com/ktr1133/chorewheel/internal/logging"
	"github.com/ktr1133/chorewheel/internal/notify"
	"github.com/ktr1133/chorewheel/internal/scheduler"
	"github.com/ktr1133/chorewheel/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var opts []scheduler.Option
	if cfg.PushEnabled() {
		svc := notify.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushSubscriber)
		fanout := notify.NewFanout(svc, store.NewPushSubscriptionStore(db), logger)
		opts = append(opts, scheduler.WithNotifier(fanout))
	} else {
		logger.Info("web push disabled, no VAPID keys configured")
	}
	sched := scheduler.New(db, logger, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cron.New()
	if _, err := c.AddFunc("* * * * *", func() {
		// Keep a run well inside the minute so trigger firings never overlap.
		runCtx, done := context.WithTimeout(ctx, 50*time.Second)
		defer done()
		if _, err := sched.ExecuteScheduledTasks(runCtx, time.Now()); err != nil {
			logger.Error("batch run failed", "error", err)
		}
	}); err != nil {
		log.Fatalf("register batch trigger: %v", err)
	}
	c.Start()
	logger.Info("chorewheel scheduler running", "db", cfg.DBPath)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	<-c.Stop().Done()
}
