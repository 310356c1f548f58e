package main

import (
	"context"
	"fmt"

	"github.com/alexflint/word2tex/googledoc"
	"github.com/rs/zerolog"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type fetchGoogleDocArgs struct {
	Document    string `arg:"positional,required" help:"document ID or URL"`
	Output      string `arg:"-o,--output,required" help:"path of the .googledoc archive to write"`
	Credentials string `arg:"--credentials,env:WORD2TEX_CREDENTIALS" help:"oauth client secret file, optionally .encrypted"`
	TokenFile   string `arg:"--token-file" help:"where to cache the oauth token"`
}

func fetchGoogleDoc(ctx context.Context, args *fetchGoogleDocArgs) error {
	credentials, err := readCredentials(args.Credentials)
	if err != nil {
		return err
	}

	tokFile := args.TokenFile
	if tokFile == "" {
		tokFile = defaultTokenFile("google-fetch-token.json")
	}

	googleToken, err := GoogleAuth(ctx, credentials, tokFile,
		"https://www.googleapis.com/auth/documents.readonly",
		"https://www.googleapis.com/auth/drive.readonly")
	if err != nil {
		return fmt.Errorf("error authenticating with google: %w", err)
	}

	driveClient, err := drive.NewService(ctx, option.WithTokenSource(googleToken))
	if err != nil {
		return fmt.Errorf("error creating drive client: %w", err)
	}

	docsClient, err := docs.NewService(ctx, option.WithTokenSource(googleToken))
	if err != nil {
		return fmt.Errorf("error creating docs client: %w", err)
	}

	d, err := googledoc.Fetch(ctx, googledoc.DocumentID(args.Document), docsClient, driveClient)
	if err != nil {
		return err
	}

	err = googledoc.WriteFile(d, args.Output)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("output", args.Output).
		Str("title", d.Doc.Title).
		Int("images", len(d.Images)).
		Msg("wrote googledoc")
	return nil
}
