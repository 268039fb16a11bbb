package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"valuelife/internal/adapters/discord"
	"valuelife/internal/adapters/httpapi"
	"valuelife/internal/application"
	"valuelife/internal/config"
	"valuelife/internal/infrastructure/database"
	"valuelife/internal/infrastructure/i18n"
	"valuelife/internal/infrastructure/memory"
	"valuelife/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	ctx := context.Background()

	var (
		eventLog output.EventLog = memory.NewEventLog()
		store    output.NetworkStore
	)
	if cfg.DatabaseURL != "" {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("❌ Migration error: %v", err)
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Database initialization error: %v", err)
		}
		defer pool.Close()
		eventLog = database.NewEventLog(pool)
		store = database.NewParticipantStore(pool)
	}

	svc := application.NewNetworkService(application.Config{
		DirectBonus:     cfg.DirectBonus,
		PairBonus:       cfg.PairBonus,
		MaxParticipants: cfg.MaxParticipants,
		Events:          eventLog,
		Store:           store,
	})

	restored, err := svc.Restore(ctx)
	if err != nil {
		log.Fatalf("❌ Restore error: %v", err)
	}
	if restored > 0 {
		log.Printf("✅ Network restored: %d participants.", restored)
	} else {
		root, err := svc.Bootstrap(ctx, cfg.RootName)
		if err != nil {
			log.Fatalf("❌ Bootstrap error: %v", err)
		}
		log.Printf("✅ Network root %q created (id=%d).", root.Name, root.ID)
	}

	api := httpapi.New(svc)
	go func() {
		log.Printf("🌐 HTTP API listening on %s", cfg.HTTPAddr)
		if err := http.ListenAndServe(cfg.HTTPAddr, api.Router()); err != nil {
			log.Fatalf("❌ HTTP server error: %v", err)
		}
	}()

	if cfg.Token != "" {
		translator := i18n.NewTranslator(cfg.DefaultLocale)
		bot, err := discord.NewBot(cfg, svc, translator)
		if err != nil {
			log.Fatalf("❌ Discord bot error: %v", err)
		}
		if err := bot.Start(); err != nil {
			log.Printf("❌ Discord bot stopped: %v", err)
			os.Exit(1)
		}
		return
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
