package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/techpulse"
	"github.com/eringen/techpulse/theme"
)

func newServeCmd() *cobra.Command {
	var (
		addr   string
		mock   bool
		static string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server (SIGHUP drops cached backend responses)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if mock {
				cfg.MockContent = true
			}

			app := techpulse.New(cfg, theme.Views(), techpulse.WithStaticDir(static))
			defer app.Close()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		wait:
			for {
				select {
				case err := <-errc:
					return err
				case sig := <-stop:
					if sig != syscall.SIGHUP {
						break wait
					}
					app.Revalidate(cmd.Context())
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.Echo.Shutdown(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&mock, "mock", false, "serve built-in preview content instead of the backend")
	cmd.Flags().StringVar(&static, "static", "public", "directory with static assets served under /public")
	return cmd
}
