package googledoc

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexflint/go-restructure"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
)

// the URL shown in the browser when a google doc is open
type documentURL struct {
	_  string `^https?://docs\.google\.com/document/(?:u/\d+/)?d/`
	ID string `[-\w]+`
	_  string `(?:[/?#].*)?$`
}

var documentURLPattern = restructure.MustCompile(&documentURL{}, restructure.Options{})

// DocumentID accepts either a bare document ID or the URL of a google doc
// and returns the document ID
func DocumentID(s string) string {
	s = strings.TrimSpace(s)
	var u documentURL
	if documentURLPattern.Find(&u, s) {
		return u.ID
	}
	return s
}

// Fetch fetches a google doc and its HTML export using Google's REST API
func Fetch(ctx context.Context, docID string, docsClient *docs.Service, driveClient *drive.Service) (*Archive, error) {
	// the html export comes as a zip archive containing the images
	resp, err := driveClient.Files.Export(docID, "application/zip").Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("error in file download api call: %w", err)
	}
	defer resp.Body.Close()

	zipbuf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading exported doc from request: %w", err)
	}

	d, err := readExport(zipbuf)
	if err != nil {
		return nil, err
	}

	d.Doc, err = docsClient.Documents.Get(docID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	return d, nil
}

// readExport unpacks the zip archive produced by the drive export API
func readExport(zipbuf []byte) (*Archive, error) {
	ziprd, err := zip.NewReader(bytes.NewReader(zipbuf), int64(len(zipbuf)))
	if err != nil {
		return nil, fmt.Errorf("error decoding zip archive: %w", err)
	}

	var d Archive
	for _, f := range ziprd.File {
		isHTML := strings.HasSuffix(f.Name, ".html")
		isImage := strings.HasPrefix(f.Name, "images/image")
		if !isHTML && !isImage {
			continue
		}

		buf, err := readZipFile(f)
		if err != nil {
			return nil, err
		}

		if isHTML {
			d.HTML = buf
		} else {
			d.Images = append(d.Images, &Image{Filename: f.Name, Content: buf})
		}
	}

	if d.HTML == nil {
		return nil, fmt.Errorf("no html file found in downloaded zip archive")
	}
	return &d, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening %s from zip archive: %w", f.Name, err)
	}
	defer r.Close()

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s from zip archive: %w", f.Name, err)
	}
	return buf, nil
}
