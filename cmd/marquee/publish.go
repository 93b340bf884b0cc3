package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marquee-dev/marquee/pkg/publish"
	"github.com/marquee-dev/marquee/pkg/site"
)

func publishCmd() *cobra.Command {
	var (
		out        string
		bucket     string
		prefix     string
		region     string
		staticDir  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the site as static files",
		Long: `Render the site and publish the result.

The export contains index.html, the thin client script, and the static
assets under their serving prefix. With --out the files land in a local
directory, ready for any static host. With --bucket they upload to S3
and stale keys under the prefix are pruned.

Examples:
  marquee publish
  marquee publish --out=dist
  marquee publish --bucket=my-site --prefix=www --region=us-east-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(out, bucket, prefix, region, staticDir, configPath)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory (default from marquee.json)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket to upload into")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&region, "region", "", "AWS region of the bucket")
	cmd.Flags().StringVarP(&staticDir, "static", "s", "", "Static files directory")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to marquee.json")

	return cmd
}

func runPublish(out, bucket, prefix, region, staticDir, configPath string) error {
	if out != "" && bucket != "" {
		return errors.New("choose either --out or --bucket, not both")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Resolve the destination: flags first, then marquee.json. A
	// configured bucket wins over the default output directory.
	if bucket == "" && out == "" {
		if cfg.Publish.Bucket != "" {
			bucket = cfg.Publish.Bucket
		} else {
			out = cfg.PublishOut()
		}
	}
	if bucket != "" {
		if prefix == "" {
			prefix = cfg.Publish.Prefix
		}
		if region == "" {
			region = cfg.Publish.Region
		}
	}

	staticPath := cfg.StaticDir()
	if staticDir != "" {
		staticPath = staticDir
	}
	if staticPath != "" {
		if _, err := os.Stat(staticPath); err != nil {
			warn("Static directory %s not found, exporting without static files", staticPath)
			staticPath = ""
		}
	}

	items, err := publish.Snapshot(publish.SnapshotConfig{
		Site:         site.New(site.WithName(cfg.Name)),
		StaticDir:    staticPath,
		StaticPrefix: cfg.Static.Prefix,
	})
	if err != nil {
		return err
	}

	var publisher publish.Publisher
	if bucket != "" {
		publisher, err = publish.NewS3PublisherFromEnv(bucket, prefix, region, slog.Default())
	} else {
		publisher, err = publish.NewDirPublisher(out, slog.Default())
	}
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	start := time.Now()
	if err := publisher.Publish(ctx, items); err != nil {
		return err
	}

	success("Published %d files in %s", len(items), time.Since(start).Round(time.Millisecond))
	if bucket != "" {
		info("s3://%s", path.Join(bucket, prefix))
	} else {
		info(out)
	}
	return nil
}
