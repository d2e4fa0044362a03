package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mmbot/bot"
	"mmbot/clients/mattermost"
	"mmbot/config"
	"mmbot/db"
	"mmbot/handlers"
	editshandler "mmbot/handlers/edits"
	triggerhandler "mmbot/handlers/trigger"
	"mmbot/middleware"
	"mmbot/models"
	editsservice "mmbot/services/edits"
	triggersservice "mmbot/services/triggers"
	"mmbot/status"
	"mmbot/tempo"
)

const eventBufferSize = 100

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	conn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(conn, cfg.DatabaseSchema); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	backend := cfg.BackendConfig
	client := mattermost.NewClient(backend.APIURL, backend.WSURL, backend.Token, backend.DebugChannel)

	store := tempo.New[string]()
	triggersService := triggersservice.NewTriggersService(db.NewPostgresTriggersRepository(conn, cfg.DatabaseSchema))
	editsService := editsservice.NewEditsService(db.NewPostgresEditsRepository(conn, cfg.DatabaseSchema))

	trigger := triggerhandler.New(triggersService, client, store, cfg.TriggerRepeatDelay)
	edits := handlers.Synchronized(editshandler.New(editsService, client))

	instance := bot.New(client).
		AddMiddleware(middleware.NewIgnoreSelf()).
		AddHandler(trigger).
		AddHandler(edits)

	if cfg.Port != "" {
		server := status.NewServer(
			backend.Name,
			[]string{"ignore-self"},
			[]string{trigger.Name(), edits.Name()},
		)
		go func() {
			if err := server.ListenAndServe(cfg.Port); err != nil {
				log.Printf("❌ Status endpoint failed: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan models.Event, eventBufferSize)
	go func() {
		err := client.Listen(ctx, events)
		if ctx.Err() != nil {
			// graceful stop requested, let the loop drain and return
			events <- models.ShutdownEvent{}
		} else if err != nil {
			log.Printf("❌ Listener failed: %v", err)
		}
		close(events)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Printf("🛑 Shutdown signal received")
		cancel()
	}()

	log.Printf("🚀 Bot %s starting", backend.Name)
	if err := instance.Run(events); err != nil {
		log.Fatalf("❌ Bot terminated: %v", err)
	}
	log.Printf("👋 Bot stopped")
}
