package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// IndexFilename is the name of the index written next to the documents.
const IndexFilename = "index.json"

var filenameReplacer = strings.NewReplacer("/", "_", ".", "_", "[", "_", "]", "_", ",", "_", " ", "_")

// File is a rendered document.
type File struct {
	// Filename is the name of the file (e.g., "yamlmeta_store_Order.json").
	Filename string
	Content  []byte
}

// Filename returns the file name used for d.
func Filename(d *Document) string {
	return filenameReplacer.Replace(d.Package+"."+d.TypeNameWithoutGenerics) + ".json"
}

// IndexEntry maps a type to its document.
type IndexEntry struct {
	FullTypeName string `json:"fullTypeName"`
	File         string `json:"file"`
	Fingerprint  string `json:"fingerprint"`
}

// Render renders each document to a file, plus an index sorted by type
// name.
func Render(docs []*Document) ([]File, error) {
	files := make([]File, 0, len(docs)+1)
	index := make([]IndexEntry, 0, len(docs))

	for _, d := range docs {
		content, err := d.Marshal()
		if err != nil {
			return nil, err
		}

		name := Filename(d)
		files = append(files, File{Filename: name, Content: content})
		index = append(index, IndexEntry{FullTypeName: d.FullTypeName, File: name, Fingerprint: d.Fingerprint})
	}

	slices.SortFunc(index, func(a, b IndexEntry) int {
		return strings.Compare(a.FullTypeName, b.FullTypeName)
	})

	content, err := json.Marshal(index, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("marshal index: %w", err)
	}

	files = append(files, File{Filename: IndexFilename, Content: append(content, '\n')})

	return files, nil
}

// WriteFiles writes all rendered files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []File, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
