package main

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/dividing-by-zaro/ugg-poetry/internal/config"
	"github.com/dividing-by-zaro/ugg-poetry/internal/game"
	"github.com/dividing-by-zaro/ugg-poetry/internal/handlers"
	"github.com/dividing-by-zaro/ugg-poetry/internal/middleware"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	gs := handlers.NewGameServer(logger, cfg, game.SystemClock)

	mux := http.NewServeMux()
	mux.Handle("/ws", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.WSHandler(logger, gs),
	)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
