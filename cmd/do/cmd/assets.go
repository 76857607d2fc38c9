package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/templui/agencysite/internal/config"
	"github.com/templui/agencysite/internal/logger"
	"github.com/templui/agencysite/internal/storage"
)

func AssetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Asset bucket tools",
	}

	cmd.AddCommand(assetsPushCmd())
	return cmd
}

func assetsPushCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload images to the S3 bucket under the same paths the site links to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), "")

			if cfg.S3Bucket == "" {
				return fmt.Errorf("S3_BUCKET is not set")
			}

			ctx := cmd.Context()
			s, err := storage.NewS3Storage(ctx, storage.S3Config{
				Region:              cfg.S3Region,
				Bucket:              cfg.S3Bucket,
				AccessKey:           cfg.S3AccessKey,
				SecretKey:           cfg.S3SecretKey,
				Endpoint:            cfg.S3Endpoint,
				PresignExpiryPublic: cfg.S3PresignExpiryPublic,
			})
			if err != nil {
				return err
			}

			n, err := pushAssets(ctx, s, os.DirFS(dir), filepath.Base(dir))
			if err != nil {
				return err
			}
			fmt.Printf("uploaded %d files to %s\n", n, cfg.S3Bucket)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "assets/img", "directory to upload; its name becomes the key prefix")
	return cmd
}

// pushAssets uploads every file in fsys to prefix/<relative path>
func pushAssets(ctx context.Context, s storage.Storage, fsys fs.FS, prefix string) (int, error) {
	var count int
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		key := path.Join(prefix, p)
		err = s.Save(ctx, key, f, mime.TypeByExtension(path.Ext(p)))
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		fmt.Println("  ", key)
		count++
		return nil
	})
	return count, err
}
