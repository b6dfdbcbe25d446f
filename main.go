package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/Husain8570/realtimeCanvas/config"
	"github.com/Husain8570/realtimeCanvas/discovery"
	"github.com/Husain8570/realtimeCanvas/drawing"
	"github.com/Husain8570/realtimeCanvas/hub"
	"github.com/Husain8570/realtimeCanvas/protocol"
	"github.com/Husain8570/realtimeCanvas/rooms"
	ws "github.com/Husain8570/realtimeCanvas/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type server struct {
	cfg      config.Config
	gateway  *hub.Hub
	registry *rooms.Registry
	handler  *protocol.Handler
}

func newServer(cfg config.Config) *server {
	gateway := hub.New()
	registry := rooms.New()
	return &server{
		cfg:      cfg,
		gateway:  gateway,
		registry: registry,
		handler:  protocol.NewHandler(gateway, registry, drawing.New()),
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	s := newServer(cfg)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.routes(),
	}

	if cfg.MDNSEnabled {
		if port, err := cfg.PortNumber(); err != nil {
			slog.Warn("mDNS disabled", "error", err)
		} else if adv, err := discovery.Advertise(cfg.MDNSInstance, port); err != nil {
			slog.Warn("mDNS disabled", "error", err)
		} else {
			defer adv.Shutdown()
			slog.Info("mDNS advertisement started", "service", discovery.ServiceType)
		}
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogger(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.Methods(http.MethodGet).Path("/ws").HandlerFunc(s.wsHandler)
	r.Methods(http.MethodGet).Path("/health").HandlerFunc(healthHandler)
	r.Methods(http.MethodGet).Path("/stats").HandlerFunc(s.statsHandler)

	if s.cfg.StaticDir != "" {
		if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
			r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.cfg.StaticDir)))
		} else {
			slog.Warn("static directory unavailable", "dir", s.cfg.StaticDir)
		}
	}
	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		slog.Debug("handled", "method", r.Method, "url", r.URL, "status", m.Code, "duration", m.Duration)
	})
}

func (s *server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrade error", "error", err)
		return
	}

	wsConn := ws.NewConn(uuid.New().String(), conn, s.gateway, s.handler, ws.Options{
		MaxMessageSize: s.cfg.MaxMessageSize,
		SendBuffer:     s.cfg.SendBuffer,
	})
	wsConn.Start()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) statsHandler(w http.ResponseWriter, r *http.Request) {
	roomCount, participants := s.registry.Stats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"rooms":        roomCount,
		"participants": participants,
		"connections":  s.gateway.Count(),
	})
}
