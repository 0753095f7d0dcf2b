/**
 * @description
 * This is the main entry point for the library-service.
 * It exposes a small CLI: `serve` wires configuration, the in-memory store,
 * the service layer, the optional RabbitMQ producer and the HTTP router, then
 * runs the server until SIGINT/SIGTERM; `routes` prints the route table.
 *
 * @dependencies
 * - github.com/spf13/cobra: command-line structure.
 * - github.com/joho/godotenv: .env loading for local development.
 */
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "library-service",
		Short:         "In-memory library management REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file for local development.
			_ = godotenv.Load()
		},
	}

	root.AddCommand(newServeCmd(), newRoutesCmd())
	return root
}
