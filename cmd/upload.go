package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/umilog/umiseed/internal/ioupload"
	"github.com/umilog/umiseed/pkg/config"
)

// getUploadCmd returns the upload command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getUploadCmd() *cobra.Command {
	uploadCmd := &cobra.Command{
		Use:   "upload [media-dir]",
		Short: "Upload site media to the R2 bucket",
		Long: `Push locally stored site media to the Cloudflare R2 bucket and
rewrite site_media.json to the public CDN URLs.

Objects already present in the bucket are skipped, so re-running
the command is cheap. Remote source URLs in the manifest are left
untouched.

Credentials come from the process environment (a .env file in the
working directory is honored):
  R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY

The media directory defaults to the configured data directory.

Examples:
  umiseed upload
  umiseed upload ./SeedData/media`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpload(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return uploadCmd
}

func runUpload(_ *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local .env is how the older scripts carried R2 credentials.
	// Missing file is fine, the variables may be exported directly.
	_ = godotenv.Load()

	var credOpts []config.Option
	if s := os.Getenv("R2_ACCOUNT_ID"); s != "" {
		credOpts = append(credOpts, config.OptUploadAccountID(s))
	}
	if s := os.Getenv("R2_ACCESS_KEY_ID"); s != "" {
		credOpts = append(credOpts, config.OptUploadAccessKeyID(s))
	}
	if s := os.Getenv("R2_SECRET_ACCESS_KEY"); s != "" {
		credOpts = append(credOpts, config.OptUploadSecretAccessKey(s))
	}
	cfg.Update(credOpts)

	mediaDir := cfg.Paths.DataDir
	if len(args) > 0 {
		mediaDir = args[0]
	}

	up, err := ioupload.New(ctx, cfg)
	if err != nil {
		return err
	}

	gn.Info("Uploading media from <em>%s</em> to bucket <em>%s</em>",
		mediaDir, cfg.Upload.Bucket)

	_, err = up.Upload(ctx, mediaDir)
	return err
}
