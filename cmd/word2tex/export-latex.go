package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alexflint/word2tex/googledoc"
	"github.com/alexflint/word2tex/mathtex"
	"github.com/alexflint/word2tex/texdoc"
	"github.com/alexflint/word2tex/textfile"
	"github.com/rs/zerolog"
)

type exportLatexArgs struct {
	Input           string `arg:"positional,required" help:".googledoc archive to convert"`
	Output          string `arg:"-o,--output" help:"where to write the latex [default: stdout]"`
	Dictionary      string `arg:"--dictionary,env:WORD2TEX_DICTIONARY" help:"JSON dictionary of glyph replacements"`
	KeepBareScripts bool   `arg:"--keep-bare-scripts" help:"do not escape ^ and _ that are not followed by a bracket"`
	Template        string `help:"latex template [default: built-in template]"`
	Author          string `help:"document author"`
	Fragment        bool   `help:"write only the body of the document"`
}

func exportLatex(ctx context.Context, args *exportLatexArgs) error {
	log := zerolog.Ctx(ctx)

	d, err := googledoc.Load(args.Input)
	if err != nil {
		return err
	}
	log.Debug().Int("images", len(d.Images)).Msg("loaded googledoc")

	// images are written next to the output and referenced by relative path
	images, err := googledoc.ImageFilenames(d)
	if err != nil {
		log.Warn().Err(err).Msg("could not match images to the document, leaving them out")
		images = nil
	}
	if len(images) > 0 && args.Output != "" {
		err = googledoc.WriteImages(d, filepath.Dir(args.Output))
		if err != nil {
			return err
		}
	}

	conv := &mathtex.Converter{
		Substitutions:   loadDictionary(ctx, args.Dictionary),
		KeepBareScripts: args.KeepBareScripts,
	}

	r, err := texdoc.FromGoogleDoc(d.Doc, texdoc.Options{
		Converter: conv,
		Images:    images,
		Log:       log,
	})
	if err != nil {
		return fmt.Errorf("error converting %s: %w", args.Input, err)
	}
	logDocumentDiagnostics(log, r.Diagnostics)

	doc := r.Document
	if doc.Title == "" {
		// fall back to the name of the document in drive
		doc.Title, _ = conv.Convert(d.Doc.Title)
	}
	doc.Author = args.Author

	out := texdoc.Fragment(doc)
	if !args.Fragment {
		tpl, err := texdoc.ParseTemplate(args.Template)
		if err != nil {
			return err
		}
		out, err = texdoc.Render(tpl, doc)
		if err != nil {
			return err
		}
	}

	// write to output file or stdout
	if args.Output == "" {
		fmt.Print(out)
		return nil
	}

	err = textfile.WriteFile(args.Output, out)
	if err != nil {
		return err
	}

	log.Info().Str("output", args.Output).Int("diagnostics", len(r.Diagnostics)).Msg("export finished")
	return nil
}
