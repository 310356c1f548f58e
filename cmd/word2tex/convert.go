package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexflint/word2tex/googledoc"
	"github.com/alexflint/word2tex/mathtex"
	"github.com/alexflint/word2tex/replacements"
	"github.com/alexflint/word2tex/texdoc"
	"github.com/alexflint/word2tex/textfile"
	"github.com/kr/pretty"
	"github.com/rs/zerolog"
)

type convertArgs struct {
	Input           string `arg:"positional" default:"input.txt" help:"text file, or .googledoc archive, to convert"`
	Output          string `arg:"-o,--output" default:"output.tex" help:"where to write the latex, - for stdout"`
	Dictionary      string `arg:"--dictionary,env:WORD2TEX_DICTIONARY" help:"JSON dictionary of glyph replacements [default: replacements.json, then the built-in dictionary]"`
	Encoding        string `default:"auto" help:"encoding of the input: auto, utf-8, utf-16le, windows-1251, koi8-r, ..."`
	KeepBareScripts bool   `arg:"--keep-bare-scripts" help:"do not escape ^ and _ that are not followed by a bracket"`
	Standalone      bool   `help:"write a complete latex document rather than a fragment"`
	Template        string `help:"latex template for --standalone [default: built-in template]"`
	Title           string `help:"document title for --standalone"`
	Author          string `help:"document author for --standalone"`
}

func convert(ctx context.Context, args *convertArgs) error {
	log := zerolog.Ctx(ctx)

	text, err := readInput(ctx, args.Input, args.Encoding)
	if err != nil {
		return err
	}

	conv := &mathtex.Converter{
		Substitutions:   loadDictionary(ctx, args.Dictionary),
		KeepBareScripts: args.KeepBareScripts,
	}

	doc, diags := texdoc.FromText(text, conv)
	logDiagnostics(log, diags)

	doc.Title = args.Title
	doc.Author = args.Author

	out := texdoc.Fragment(doc)
	if args.Standalone {
		tpl, err := texdoc.ParseTemplate(args.Template)
		if err != nil {
			return err
		}
		out, err = texdoc.Render(tpl, doc)
		if err != nil {
			return err
		}
	}

	if args.Output == "-" {
		fmt.Print(out)
		return nil
	}

	err = textfile.WriteFile(args.Output, out)
	if err != nil {
		return err
	}

	log.Info().Str("output", args.Output).Int("diagnostics", len(diags)).Msg("conversion finished")
	return nil
}

// readInput reads a text file, or the text of a .googledoc archive
func readInput(ctx context.Context, path, encoding string) (string, error) {
	log := zerolog.Ctx(ctx)

	if strings.HasSuffix(path, ".googledoc") {
		d, err := googledoc.Load(path)
		if err != nil {
			return "", err
		}
		return googledoc.Text(d.Doc), nil
	}

	err := textfile.ValidEncoding(encoding)
	if err != nil {
		return "", err
	}

	text, used, err := textfile.ReadFile(path, encoding)
	if err != nil {
		return "", err
	}
	log.Debug().Str("input", path).Str("encoding", used).Msg("read input")
	return text, nil
}

// loadDictionary loads the glyph dictionary. Problems with the dictionary
// are logged and leave the converter with no substitutions. If no path is
// given then replacements.json is tried, then the built-in dictionary.
func loadDictionary(ctx context.Context, path string) mathtex.SubstitutionMap {
	log := zerolog.Ctx(ctx)

	explicit := path != ""
	if !explicit {
		path = replacements.DefaultPath
	}

	m, err := replacements.Load(path)
	switch {
	case err == nil:
		log.Debug().Str("dictionary", path).Int("entries", len(m)).Msg("loaded dictionary")
		return m
	case !explicit && errors.Is(err, replacements.ErrNotFound):
		log.Debug().Msg("using the built-in dictionary")
		return replacements.Default()
	case errors.Is(err, replacements.ErrEmpty):
		log.Warn().Str("dictionary", path).Msg("dictionary is empty, no glyphs will be replaced")
	default:
		log.Error().Err(err).Msg("could not load dictionary, no glyphs will be replaced")
	}
	return nil
}

type segmentsArgs struct {
	Input           string `arg:"positional" default:"input.txt"`
	Encoding        string `default:"auto"`
	Raw             bool   `help:"segment the input as it is, without escaping and normalizing it first"`
	KeepBareScripts bool   `arg:"--keep-bare-scripts" help:"escape as convert --keep-bare-scripts does"`
}

// printSegments dumps the segments that the rewriter sees, for debugging
// unexpected \text placement
func printSegments(ctx context.Context, args *segmentsArgs) error {
	text, err := readInput(ctx, args.Input, args.Encoding)
	if err != nil {
		return err
	}

	pretty.Println(segments(text, args))
	return nil
}

func segments(text string, args *segmentsArgs) []mathtex.Segment {
	if !args.Raw {
		text = mathtex.EscapeSpecial(text, args.KeepBareScripts)
		text, _ = mathtex.NormalizeAccents(text)
		text, _ = mathtex.NormalizeScripts(text)
	}
	return mathtex.SplitScripts(text)
}
