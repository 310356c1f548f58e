package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

type publishArgs struct {
	Paths          []string `arg:"positional,required" help:"files to upload, such as output.tex and its images"`
	Bucket         string   `arg:"--bucket,env:WORD2TEX_BUCKET,required" help:"cloud storage bucket"`
	ServiceAccount string   `arg:"--service-account,env:WORD2TEX_SERVICE_ACCOUNT" help:"service account key file, optionally .encrypted [default: application default credentials]"`
}

// objectName names an object after a hash of its content so that repeated
// uploads of the same file land in the same place
func objectName(path string, content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:8]) + filepath.Ext(path)
}

func objectURL(bucket, name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, name)
}

func upload(ctx context.Context, client *storage.Client, bucket, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	name := objectName(path, content)
	obj := client.Bucket(bucket).Object(name)
	wr := obj.NewWriter(ctx)
	defer wr.Close()

	_, err = wr.Write(content)
	if err != nil {
		return "", fmt.Errorf("error writing %s to cloud storage: %w", path, err)
	}
	err = wr.Close()
	if err != nil {
		return "", fmt.Errorf("error writing %s to cloud storage: %w", path, err)
	}

	return objectURL(bucket, name), nil
}

func publish(ctx context.Context, args *publishArgs) error {
	var opts []option.ClientOption
	if args.ServiceAccount != "" {
		credentials, err := readCredentials(args.ServiceAccount)
		if err != nil {
			return err
		}
		opts = append(opts, option.WithCredentialsJSON(credentials))
	}

	storageClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("error creating storage client: %w", err)
	}
	defer storageClient.Close()

	for _, path := range args.Paths {
		url, err := upload(ctx, storageClient, args.Bucket, path)
		if err != nil {
			return err
		}
		zerolog.Ctx(ctx).Info().Str("path", path).Str("url", url).Msg("uploaded")
		fmt.Println(url)
	}
	return nil
}
