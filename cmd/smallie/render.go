package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smallie-dev/smallie/internal/config"
	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/snapshot"
)

func renderCmd(opts *rootOptions) *cobra.Command {
	var (
		publish string
		driver  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo app to HTML",
		Long: `Render the todo demo document as HTML.

Without --publish the document is written to stdout. With --publish it
is stored under the given key in the configured snapshot store.

Examples:
  smallie render > index.html
  smallie render --publish index.html
  smallie render --publish demo/index.html --driver s3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if driver != "" {
				cfg.Snapshot.Driver = driver
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			doc := dom.NewDocument()
			demoApp(cfg.Name)(doc)

			if publish == "" {
				return dom.Render(cmd.OutOrStdout(), doc.Root(), dom.WithProperties())
			}

			store, err := snapshot.Open(snapshotOptions(cfg, opts.dir))
			if err != nil {
				return err
			}
			if err := snapshot.Publish(cmd.Context(), store, publish, doc); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Published %s (%s)", publish, cfg.Snapshot.Driver)
			return nil
		},
	}

	cmd.Flags().StringVar(&publish, "publish", "", "Store the document under this key instead of printing it")
	cmd.Flags().StringVar(&driver, "driver", "", "Snapshot driver override (file or s3)")

	return cmd
}

// snapshotOptions maps the snapshot section to store options. Without a
// config file the file driver writes relative to the project directory.
func snapshotOptions(cfg *config.Config, dir string) snapshot.Options {
	out := cfg.SnapshotDir()
	if cfg.Path() == "" && !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	return snapshot.Options{
		Driver:    cfg.Snapshot.Driver,
		Dir:       out,
		Bucket:    cfg.Snapshot.Bucket,
		Prefix:    cfg.Snapshot.Prefix,
		Region:    cfg.Snapshot.Region,
		Endpoint:  cfg.Snapshot.Endpoint,
		PathStyle: cfg.Snapshot.PathStyle,
	}
}
