package main

import (
	"context"
	"os"

	"github.com/alexflint/go-arg"
)

type fetchArgs struct {
	GoogleDoc *fetchGoogleDocArgs `arg:"subcommand:google-doc"`
}

type exportArgs struct {
	Latex *exportLatexArgs `arg:"subcommand"`
}

type dictionaryArgs struct {
	Init *dictionaryInitArgs `arg:"subcommand"`
	Show *dictionaryShowArgs `arg:"subcommand"`
}

type secretsArgs struct {
	Encrypt *secretsCryptArgs `arg:"subcommand"`
	Decrypt *secretsCryptArgs `arg:"subcommand"`
}

type args struct {
	Convert    *convertArgs    `arg:"subcommand" help:"convert a text file to latex"`
	Segments   *segmentsArgs   `arg:"subcommand" help:"print the prose and formula segments of a text file"`
	Fetch      *fetchArgs      `arg:"subcommand" help:"download a document"`
	Export     *exportArgs     `arg:"subcommand" help:"convert a downloaded document"`
	Publish    *publishArgs    `arg:"subcommand" help:"upload files to cloud storage"`
	Dictionary *dictionaryArgs `arg:"subcommand" help:"work with the glyph dictionary"`
	Secrets    *secretsArgs    `arg:"subcommand" help:"encrypt or decrypt credential files"`
	Verbose    bool            `arg:"-v,--verbose" help:"log debug messages"`
}

func (args) Description() string {
	return "word2tex converts word-processor text with embedded mathematics into LaTeX\n"
}

func main() {
	var args args
	p := arg.MustParse(&args)

	log := newLogger(args.Verbose)
	ctx := log.WithContext(context.Background())

	var err error
	switch {
	case args.Convert != nil:
		err = convert(ctx, args.Convert)

	case args.Segments != nil:
		err = printSegments(ctx, args.Segments)

	case args.Fetch != nil:
		switch {
		case args.Fetch.GoogleDoc != nil:
			err = fetchGoogleDoc(ctx, args.Fetch.GoogleDoc)
		default:
			p.Fail("fetch requires a subcommand")
		}

	case args.Export != nil:
		switch {
		case args.Export.Latex != nil:
			err = exportLatex(ctx, args.Export.Latex)
		default:
			p.Fail("export requires a subcommand")
		}

	case args.Publish != nil:
		err = publish(ctx, args.Publish)

	case args.Dictionary != nil:
		switch {
		case args.Dictionary.Init != nil:
			err = dictionaryInit(ctx, args.Dictionary.Init)
		case args.Dictionary.Show != nil:
			err = dictionaryShow(ctx, args.Dictionary.Show)
		default:
			p.Fail("dictionary requires a subcommand")
		}

	case args.Secrets != nil:
		switch {
		case args.Secrets.Encrypt != nil:
			err = processSecrets(args.Secrets.Encrypt, encrypt)
		case args.Secrets.Decrypt != nil:
			err = processSecrets(args.Secrets.Decrypt, decrypt)
		default:
			p.Fail("secrets requires a subcommand")
		}

	default:
		p.Fail("you must specify a subcommand")
	}

	if err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}
