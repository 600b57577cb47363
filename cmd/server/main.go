// MedAgent API server.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"medagent/internal/db"
	"medagent/internal/llm"
	"medagent/internal/server"
	"medagent/internal/triage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		slog.Error("DATABASE_URL must be set")
		os.Exit(1)
	}

	dbConn, err := sql.Open("postgres", dbURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	repo := db.NewRepository(dbConn)

	// Uses env: OPENAI_API_KEY, OPENAI_MODEL_CHAT.
	svc := triage.NewService(llm.NewOpenAIClient())

	handler := server.NewHandler(repo, svc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler.Router()); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
