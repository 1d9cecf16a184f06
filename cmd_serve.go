package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/api"
	"github.com/Rshep3087/finpal/assistant"
)

const (
	defaultServeAddr = "127.0.0.1:8080"
	shutdownTimeout  = 10 * time.Second
)

func newServeCmd(open ledgerOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger as a local JSON API",
		Long: `Serve summary, transactions, budgets, goals, statistics, export and the
assistant over HTTP. There is no authentication; keep the listen address local.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			origins, _ := cmd.Flags().GetStringSlice("cors-origins")

			store, err := open(cmd.Context())
			if err != nil {
				return err
			}

			remote, err := newResponder(cfg, store)
			if err != nil {
				return err
			}

			// gin uses debug as the default mode, release is used unless
			// GIN_MODE says otherwise.
			if ginMode, ok := os.LookupEnv("GIN_MODE"); ok {
				gin.SetMode(ginMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			router := api.NewRouter(api.Config{
				Store:        store,
				Responder:    newAIAssistant(remote, assistant.NewSimulator(nil), store.Offline),
				Logger:       log.Default().WithPrefix("api"),
				AllowOrigins: origins,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			})
		},
	}

	cmd.Flags().String("addr", defaultServeAddr, "Address to listen on")
	cmd.Flags().StringSlice("cors-origins", nil, "Origins allowed to call the API from a browser")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("Serving API", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
