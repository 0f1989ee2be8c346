package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/glasspane-dev/glasspane/internal/preview"
	"github.com/glasspane-dev/glasspane/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve exposes a render endpoint for host applications, addressable
preview documents, and a websocket relay for the error and navigation
events the documents post while running.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := preview.NewRenderer()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = viper.GetString("serve.addr")
			}
			var opts []server.Option
			if addr != "" {
				opts = append(opts, server.WithAddr(addr))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(renderer, opts...).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :7411)")

	return cmd
}

func init() {
	rootCmd.AddCommand(newServeCmd())
}
