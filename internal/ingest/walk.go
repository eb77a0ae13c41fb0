package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"painter/internal/parser"
)

// LoadFiles calls fn for every file under root whose extension is one of exts.
// A missing root is not an error. Sibling order is unspecified.
func LoadFiles(root string, exts []string, fn func(path string) error) error {
	if root == "" {
		return nil
	}
	root = filepath.Clean(root)
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(exts, filepath.Ext(d.Name())) {
			return nil
		}
		return fn(path)
	})
}

// ImportJSON parses every .json file under root and hands non-empty documents
// to merge. Empty documents are counted and skipped. The first malformed file
// aborts the pass; documents merged before it stay merged.
func ImportJSON(root string, merge func(doc *parser.Document) error) (Result, error) {
	var result Result
	err := LoadFiles(root, jsonExtensions, func(path string) error {
		doc, err := parser.ParseFile(path)
		if errors.Is(err, parser.ErrEmptyDocument) {
			result.FilesSkipped++
			return nil
		}
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		result.FilesLoaded++
		return merge(doc)
	})
	if err != nil {
		return result, err
	}
	return result, nil
}
