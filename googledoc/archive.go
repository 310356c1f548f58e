package googledoc

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"google.golang.org/api/docs/v1"
)

// Archive is a google doc together with the images from its HTML export.
// Archives are stored gzipped and gob-encoded in .googledoc files so that a
// document can be converted repeatedly without going back to the API.
type Archive struct {
	Doc    *docs.Document
	HTML   []byte   // html export of the google doc
	Images []*Image // images from the html export, in archive order
}

// Image is an image file from the HTML export of a google doc
type Image struct {
	Filename string // path within the export, such as "images/image1.png"
	Content  []byte
}

var ErrNoDocument = errors.New("archive contains no document")

// Load reads a .googledoc file
func Load(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer f.Close()

	rd, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("error initializing gzip reader: %w", err)
	}
	defer rd.Close()

	var d Archive
	err = gob.NewDecoder(rd).Decode(&d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	if d.Doc == nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, ErrNoDocument)
	}
	return &d, nil
}

// WriteFile writes an archive to a .googledoc file
func WriteFile(d *Archive, path string) error {
	if d.Doc == nil {
		return ErrNoDocument
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer f.Close()

	wr := gzip.NewWriter(f)
	err = gob.NewEncoder(wr).Encode(d)
	if err != nil {
		return fmt.Errorf("error encoding google doc: %w", err)
	}

	// the gzip footer must be written before the file is closed
	err = wr.Close()
	if err != nil {
		return fmt.Errorf("error compressing google doc: %w", err)
	}
	return f.Close()
}
