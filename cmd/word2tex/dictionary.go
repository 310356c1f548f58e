package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/word2tex/replacements"
	"github.com/rs/zerolog"
)

type dictionaryInitArgs struct {
	Output string `arg:"-o,--output" default:"replacements.json"`
	Force  bool   `help:"overwrite an existing file"`
}

// dictionaryInit writes the built-in dictionary to a file so that it can
// be edited
func dictionaryInit(ctx context.Context, args *dictionaryInitArgs) error {
	if _, err := os.Stat(args.Output); err == nil && !args.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", args.Output)
	}

	buf, err := replacements.Encode(replacements.Default())
	if err != nil {
		return err
	}

	err = os.WriteFile(args.Output, buf, 0666)
	if err != nil {
		return fmt.Errorf("error writing to %s: %w", args.Output, err)
	}

	zerolog.Ctx(ctx).Info().Str("output", args.Output).Msg("wrote dictionary")
	return nil
}

type dictionaryShowArgs struct {
	Dictionary string `arg:"positional,env:WORD2TEX_DICTIONARY"`
}

// dictionaryShow prints the dictionary that convert would use
func dictionaryShow(ctx context.Context, args *dictionaryShowArgs) error {
	m := loadDictionary(ctx, args.Dictionary)
	for _, s := range m {
		fmt.Printf("%s\t%s\n", s.Key, s.Value)
	}
	return nil
}
