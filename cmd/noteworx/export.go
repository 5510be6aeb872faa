package main

import (
	"context"
	"fmt"
	"time"

	"github.com/noteworx/noteworx/internal/config"
	"github.com/noteworx/noteworx/internal/note/service"
	"github.com/noteworx/noteworx/internal/storage"
	"github.com/noteworx/noteworx/pkg/logger"
	"github.com/spf13/cobra"
)

// snapshotStore is where `export` uploads snapshots.
type snapshotStore interface {
	service.SnapshotWriter
	Bucket() string
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

func openMinIO(ctx context.Context, cfg *config.Config) (snapshotStore, error) {
	return storage.NewMinIOStorage(ctx, &cfg.MinIO)
}

func newExportCmd(a *app) *cobra.Command {
	var (
		key     string
		linkTTL time.Duration
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a JSON snapshot of all notes to object storage",
		Long: `Export writes every note into one JSON document and uploads it to the
MinIO / S3 bucket configured with MINIO_ENDPOINT, MINIO_ACCESS_KEY,
MINIO_SECRET_KEY and MINIO_BUCKET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc *service.Service) error {
				dst, err := a.openSnapshots(ctx, a.cfg)
				if err != nil {
					return err
				}
				objKey, snap, err := svc.Export(ctx, dst, key)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Exported %d notes to %s/%s\n", snap.Count, dst.Bucket(), objKey)
				if linkTTL > 0 {
					u, err := dst.GetPresignedURL(ctx, objKey, linkTTL)
					if err != nil {
						logger.Warnf("presign %s: %v", objKey, err)
						return nil
					}
					fmt.Fprintf(w, "Download link (valid %s): %s\n", linkTTL, u)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Object key (default exports/notes-<timestamp>.json)")
	cmd.Flags().DurationVar(&linkTTL, "link-ttl", 24*time.Hour, "Lifetime of the printed download link; 0 disables it")
	return cmd
}
