// Command snapshot captures the live CMS content graph to an on-disk
// snapshot tree that the server can serve with CONTENT_SOURCE=snapshot.
//
// Usage:
//
//	snapshot --api http://localhost:8001/api/v1 --out content-snapshots \
//	         --attachments-dir public/attachments [--skip-attachments] \
//	         [--manifest walk.yaml]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"usher-web/internal/infra/capture"
	"usher-web/internal/observability/logging"
)

func main() {
	var (
		apiBaseURL      = flag.String("api", "http://localhost:8001/api/v1", "live CMS API base URL")
		outDir          = flag.String("out", "content-snapshots", "snapshot output directory")
		attachmentsDir  = flag.String("attachments-dir", "public/attachments", "attachment download directory")
		skipAttachments = flag.Bool("skip-attachments", false, "skip downloading attachment binaries")
		manifestPath    = flag.String("manifest", "", "optional YAML manifest overriding the default walk")
	)
	flag.Parse()

	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	manifest := capture.DefaultManifest()
	if *manifestPath != "" {
		loaded, err := capture.LoadManifest(*manifestPath)
		if err != nil {
			logger.Error("invalid manifest", slog.Any("error", err))
			os.Exit(1)
		}
		manifest = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	capturer := capture.New(capture.Config{
		APIBaseURL:      *apiBaseURL,
		OutDir:          *outDir,
		AttachmentsDir:  *attachmentsDir,
		SkipAttachments: *skipAttachments,
		Manifest:        manifest,
	}, logger)

	stats, err := capturer.Run(ctx)
	if err != nil {
		// The walk is not resumable: a partial tree is not servable.
		logger.Error("capture aborted", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("snapshot complete",
		slog.Int("files", stats.Files),
		slog.Int("attachments", stats.Attachments),
		slog.String("out", *outDir))
}
