package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ugaemi/searchlight-server/internal/config"
	"github.com/ugaemi/searchlight-server/internal/handler"
	"github.com/ugaemi/searchlight-server/internal/room"
	"github.com/ugaemi/searchlight-server/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	cfg, err := config.Load(os.Getenv("SEARCHLIGHT_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	rm := room.NewManager(room.Settings{
		Tuning:        cfg.Tuning(),
		TickInterval:  cfg.TickInterval(),
		SpawnInterval: cfg.SpawnInterval,
		Lives:         cfg.Lives,
		ZoneCount:     cfg.ZoneCount,
		PursuerCount:  cfg.PursuerCount,
	})
	router := handler.NewRouter(rm)

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handleHealth(hub, rm, w)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		rm.StopAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
		stopHub()
	}()

	slog.Info("server starting", "addr", srv.Addr, "tick_rate", cfg.TickRate,
		"zones", cfg.ZoneCount, "pursuers", cfg.PursuerCount)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

type healthResponse struct {
	Status  string   `json:"status"`
	Rooms   int      `json:"rooms"`
	Playing int      `json:"playing"`
	Hub     ws.Stats `json:"hub"`
}

func handleHealth(hub *ws.Hub, rm *room.Manager, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Rooms:   rm.RoomCount(),
		Playing: rm.PlayingCount(),
		Hub:     hub.Stats(),
	})
}

func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(hub.NextClientID(), hub, conn)
	hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
