package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/techpulse/cms"
	"github.com/eringen/techpulse/content"
	"github.com/eringen/techpulse/views"
)

type report struct {
	Backend    string                `json:"backend"`
	Stats      views.SiteStats       `json:"stats"`
	Categories []views.CategoryStats `json:"categories"`
	Authors    []views.AuthorStats   `json:"authors"`
}

func newCheckCmd() *cobra.Command {
	var mock bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch content from the backend and print site statistics as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var src cms.Source
			backend := cfg.APIURL
			if mock || cfg.MockContent {
				src = cms.NewMockSource()
				backend = "mock"
			} else {
				if backend == "" {
					return fmt.Errorf("no backend configured: set API_URL or api_url")
				}
				client := cms.NewClient(cms.ClientConfig{BaseURL: backend, Timeout: cfg.Timeout, Revalidate: -1})
				backend = client.BaseURL()
				src = client
			}

			svc := content.New(src, cms.NewMapper(cfg.AssetHost))
			ctx := cmd.Context()
			r := report{
				Backend:    backend,
				Stats:      svc.Stats(ctx),
				Categories: svc.CategoryStats(ctx),
				Authors:    svc.AuthorStats(ctx),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		},
	}
	cmd.Flags().BoolVar(&mock, "mock", false, "use built-in preview content")
	return cmd
}
