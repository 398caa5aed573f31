package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/teamgrid/teamgrid/config"
	"github.com/teamgrid/teamgrid/internal/entity"
	"github.com/teamgrid/teamgrid/internal/events"
	"github.com/teamgrid/teamgrid/internal/queue"
	outbox_repo "github.com/teamgrid/teamgrid/internal/repo/outbox"
	"github.com/teamgrid/teamgrid/internal/routers"
	directory_service "github.com/teamgrid/teamgrid/internal/use-case/directory-case"
	"github.com/teamgrid/teamgrid/internal/websocket"
	"github.com/teamgrid/teamgrid/internal/worker"
	"github.com/teamgrid/teamgrid/state"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// initialize the application
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	state, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer state.Close()

	if err := state.DB.AutoMigrate(
		&entity.Employee{},
		&entity.Meeting{},
		&entity.MeetingAttendee{},
		&entity.Conversation{},
		&entity.ConversationParticipant{},
		&entity.ConversationMessage{},
		&entity.ChannelReadReceipt{},
		&entity.OutboxEvent{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	wsHub := websocket.NewHub()
	presenceHandler := websocket.NewPresenceHandler(wsHub, directory_service.NewDirectoryService(state))
	log.Info().Msg("Presence hub initialized")

	r := routers.NewRouter(state, presenceHandler)

	publisher := events.NewQueuePublisher(queue.NewProducer(state.Redis))
	dispatcher := worker.NewDispatcherPool(
		outbox_repo.NewOutboxRepo(state),
		publisher,
		config.Conf.WORKER.Num,
		time.Duration(config.Conf.WORKER.PollIntervalSeconds)*time.Second,
	)
	dispatcher.Start(ctx)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// serve the application
	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")
	// gracefully shutdown the application
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}
	dispatcher.Wait()
}
