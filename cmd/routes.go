package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/transfa/library-service/internal/config"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the HTTP route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("cannot load config: %w", err)
			}
			// Wiring only; keep the broker out of it.
			cfg.RabbitMQURL = ""

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			c, err := wire(context.Background(), cfg, logger)
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), c.router)
		},
	}
}

func printRoutes(w io.Writer, routes chi.Routes) error {
	return chi.Walk(routes, func(method, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		route = strings.Replace(route, "/*/", "/", -1)
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		_, err := fmt.Fprintf(w, "%-6s %s\n", method, route)
		return err
	})
}
