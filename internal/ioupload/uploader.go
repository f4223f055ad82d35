// Package ioupload pushes site media files to Cloudflare R2 through its
// S3-compatible API and rewrites the media manifest to the public CDN
// URLs. This is an impure I/O package used by the upload command.
package ioupload

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/seed"
)

// Media objects are immutable once published; cache them hard.
const cacheControl = "public, max-age=31536000"

// objectAPI is the subset of the S3 client the uploader uses.
type objectAPI interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput,
		opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Result summarizes one upload run.
type Result struct {
	Uploaded int
	Skipped  int
}

// Uploader pushes local media files referenced by site_media.json to
// the R2 bucket.
type Uploader struct {
	cfg    *config.Config
	client objectAPI
}

// New creates an Uploader connected to the R2 endpoint derived from the
// account id, authenticated with the static credentials from the
// process environment.
func New(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	up := cfg.Upload
	if up.AccountID == "" || up.AccessKeyID == "" ||
		up.SecretAccessKey == "" {
		return nil, CredentialsError()
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com",
		up.AccountID)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				up.AccessKeyID, up.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, ClientError(err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &Uploader{cfg: cfg, client: client}, nil
}

// Upload reads mediaDir/site_media.json, uploads every locally stored
// file that is not yet in the bucket, rewrites the manifest URLs to the
// public CDN base, and writes the manifest back.
func (u *Uploader) Upload(
	ctx context.Context,
	mediaDir string,
) (Result, error) {
	var res Result

	manifestPath := filepath.Join(mediaDir, "site_media.json")
	bs, err := os.ReadFile(manifestPath)
	if err != nil {
		return res, MediaFileError(manifestPath, err)
	}

	var doc seed.MediaDoc
	enc := gnfmt.GNjson{}
	if err := enc.Decode(bs, &doc); err != nil {
		return res, MediaFileError(manifestPath, err)
	}

	publicBase := strings.TrimSuffix(u.cfg.Upload.PublicURL, "/")

	for i := range doc.Media {
		m := &doc.Media[i]

		// Already rewritten to the CDN on a previous run.
		if strings.HasPrefix(m.URL, publicBase) {
			res.Skipped++
			continue
		}
		// Remote source URLs are left for the fetch step to localize.
		if strings.Contains(m.URL, "://") {
			res.Skipped++
			continue
		}

		localPath := filepath.Join(mediaDir, filepath.FromSlash(m.URL))
		key := fmt.Sprintf("sites/%s/%s",
			m.SiteID, filepath.Base(localPath))

		uploaded, err := u.putIfAbsent(ctx, key, localPath)
		if err != nil {
			return res, err
		}
		if uploaded {
			res.Uploaded++
		} else {
			res.Skipped++
		}

		m.URL = publicBase + "/" + key
	}

	out, err := (gnfmt.GNjson{Pretty: true}).Encode(doc)
	if err != nil {
		return res, MediaFileError(manifestPath, err)
	}
	if err := os.WriteFile(manifestPath, out, 0644); err != nil {
		return res, MediaFileError(manifestPath, err)
	}

	slog.Info("upload complete",
		"uploaded", res.Uploaded, "skipped", res.Skipped)
	gn.Info("Uploaded <em>%d</em> files, skipped <em>%d</em>",
		res.Uploaded, res.Skipped)
	return res, nil
}

// putIfAbsent uploads a file unless the object already exists. Returns
// whether an upload happened.
func (u *Uploader) putIfAbsent(
	ctx context.Context,
	key, localPath string,
) (bool, error) {
	bucket := u.cfg.Upload.Bucket

	_, err := u.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err == nil {
		slog.Debug("object exists, skipping", "key", key)
		return false, nil
	}

	file, err := os.Open(localPath)
	if err != nil {
		return false, MediaFileError(localPath, err)
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       &bucket,
		Key:          &key,
		Body:         file,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return false, ObjectError(key, err)
	}

	slog.Debug("object uploaded", "key", key)
	return true, nil
}
