package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eringen/techpulse"
)

// version is set at build time via ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "techpulse",
		Short: "TechPulse - a news site front end for a headless CMS",
		Long: `techpulse serves a news site whose content lives in a headless CMS.

Configuration is read from an optional YAML file and overlaid with
environment variables (a .env file in the working directory is loaded
first).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("techpulse {{.Version}}\n")
	root.PersistentFlags().StringP("config", "c", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(), newCheckCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the techpulse version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "techpulse %s\n", version)
		},
	}
}

// loadConfig reads the --config file, if any, and overlays the environment.
func loadConfig(cmd *cobra.Command) (techpulse.SiteConfig, error) {
	var cfg techpulse.SiteConfig
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		var err error
		if cfg, err = techpulse.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	return techpulse.ConfigFromEnv(cfg)
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
