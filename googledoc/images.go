package googledoc

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// regular expression for finding image references in HTML-exported google docs
var imageRegexp = regexp.MustCompile(`images/image\d+\.(png|jpg|jpeg|gif)`)

// WriteImages writes the images in an archive under dir, keeping their
// paths within the export (so images/image1.png ends up at
// dir/images/image1.png)
func WriteImages(d *Archive, dir string) error {
	for _, img := range d.Images {
		path := filepath.Join(dir, filepath.FromSlash(img.Filename))
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return fmt.Errorf("error creating directory for %s: %w", img.Filename, err)
		}
		err = os.WriteFile(path, img.Content, 0666)
		if err != nil {
			return fmt.Errorf("error writing %s: %w", path, err)
		}
	}
	return nil
}

// ImageFilenames maps the object ID of each image in the document to the
// path of that image within the export
func ImageFilenames(d *Archive) (map[string]string, error) {
	// the HTML lists the images in document order, which is how they are
	// matched to inline objects
	filenames := imageRegexp.FindAll(d.HTML, -1)

	var objectIDs []string
	if d.Doc.Body != nil {
		for _, elem := range d.Doc.Body.Content {
			if elem.Paragraph == nil {
				continue
			}
			for _, e := range elem.Paragraph.Elements {
				if e.InlineObjectElement == nil {
					continue
				}
				id := e.InlineObjectElement.InlineObjectId
				if isImage(d, id) {
					objectIDs = append(objectIDs, id)
				}
			}
		}
	}

	if len(objectIDs) != len(filenames) {
		return nil, fmt.Errorf("found %d images in the HTML but %d inline objects in the document",
			len(filenames), len(objectIDs))
	}

	m := make(map[string]string)
	for i, id := range objectIDs {
		m[id] = string(filenames[i])
	}
	return m, nil
}

func isImage(d *Archive, objectID string) bool {
	obj, ok := d.Doc.InlineObjects[objectID]
	if !ok || obj.InlineObjectProperties == nil || obj.InlineObjectProperties.EmbeddedObject == nil {
		return false
	}
	emb := obj.InlineObjectProperties.EmbeddedObject
	return emb.EmbeddedDrawingProperties != nil || emb.ImageProperties != nil
}
