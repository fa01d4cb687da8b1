// Command mockapi is an in-memory stand-in for the shop's REST API. It
// serves every endpoint the admin console calls, seeded with sample data,
// so the console can be run and clicked through without the real backend.
//
//	go run ./cmd/tools/mockapi --addr :8081
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

	"github.com/rs/cors"
	"github.com/spf13/pflag"
)

func main() {
	addr := pflag.String("addr", ":8081", "listen address")
	origins := pflag.StringSlice("origins", []string{"http://localhost:8080", "http://127.0.0.1:8080"}, "allowed CORS origins")
	pflag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	a := &api{store: seed(time.Now()), logger: logger, now: time.Now}

	c := cors.New(cors.Options{
		AllowedOrigins: *origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           c.Handler(a.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("mockapi_started", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mockapi_failed", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
