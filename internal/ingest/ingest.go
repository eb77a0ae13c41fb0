package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"painter/internal/parser"
	"painter/internal/tables"
)

var (
	jsonExtensions  = []string{".json"}
	imageExtensions = []string{".png", ".jpg"}
)

type Result struct {
	FilesLoaded  int
	FilesSkipped int
	KeysMerged   int
}

type LocaleResult struct {
	Result
	// Added records, per language, every key written from this pass's files.
	Added            map[string]map[string]string
	Backfilled       int
	MissingLanguages []string
}

type LocaleOptions struct {
	Languages []string
	Reference string
}

type Importer struct {
	log *zap.Logger
}

func NewImporter(log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{log: log}
}

// ImportQuests overlays every quest file under root onto quests.
func (im *Importer) ImportQuests(root string, quests tables.ContentTable) (*Result, error) {
	merged := 0
	result, err := ImportJSON(root, func(doc *parser.Document) error {
		merged += tables.Overlay(quests, doc.All())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing quests: %w", err)
	}
	result.KeysMerged = merged

	im.log.Debug("quests imported",
		zap.String("root", root),
		zap.Int("files", result.FilesLoaded),
		zap.Int("skipped", result.FilesSkipped),
		zap.Int("quests", result.KeysMerged))
	return &result, nil
}

// ImportLocales merges <root>/<lang>/**/*.json into the live table of each
// language, then backfills reference-language keys into languages whose files
// did not provide them.
func (im *Importer) ImportLocales(root string, opts LocaleOptions, global tables.LocaleSet) (*LocaleResult, error) {
	result := &LocaleResult{Added: make(map[string]map[string]string)}

	for _, lang := range opts.Languages {
		live, ok := global[lang]
		if !ok {
			result.MissingLanguages = append(result.MissingLanguages, lang)
			im.log.Debug("language not loaded by host, skipping", zap.String("lang", lang))
			continue
		}
		pass, err := ImportJSON(filepath.Join(root, lang), func(doc *parser.Document) error {
			values, err := doc.Strings()
			if err != nil {
				return fmt.Errorf("%s: %w", doc.SourceFile, err)
			}
			added := result.Added[lang]
			if added == nil {
				added = make(map[string]string)
				result.Added[lang] = added
			}
			for key, value := range values {
				live[key] = value
				added[key] = value
			}
			return nil
		})
		result.FilesLoaded += pass.FilesLoaded
		result.FilesSkipped += pass.FilesSkipped
		if err != nil {
			return nil, fmt.Errorf("importing %s locales: %w", lang, err)
		}
		result.KeysMerged += len(result.Added[lang])
	}

	result.Backfilled = Backfill(global, result.Added, opts.Reference, opts.Languages)

	im.log.Debug("locales imported",
		zap.String("root", root),
		zap.Int("files", result.FilesLoaded),
		zap.Int("keys", result.KeysMerged),
		zap.Int("backfilled", result.Backfilled),
		zap.Strings("missing", result.MissingLanguages))
	return result, nil
}

// Backfill copies every key the reference language added into each other
// loaded language that neither added the key itself nor already defines it.
// It returns the number of strings written and is safe to repeat.
func Backfill(global tables.LocaleSet, added map[string]map[string]string, reference string, languages []string) int {
	refAdded, ok := added[reference]
	if !ok {
		return 0
	}
	written := 0
	for _, lang := range languages {
		if lang == reference {
			continue
		}
		live, ok := global[lang]
		if !ok {
			continue
		}
		own := added[lang]
		for key, value := range refAdded {
			if _, ok := own[key]; ok {
				continue
			}
			if _, ok := live[key]; ok {
				continue
			}
			live[key] = value
			written++
		}
	}
	return written
}

// RouteImages registers every .png and .jpg under root with router, keyed by
// prefix plus the file name without extension.
func (im *Importer) RouteImages(root, prefix string, router tables.ImageRouter) (int, error) {
	count := 0
	err := LoadFiles(root, imageExtensions, func(path string) error {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		router.AddRoute(prefix+name, path)
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("routing images: %w", err)
	}
	im.log.Debug("images routed", zap.String("root", root), zap.Int("images", count))
	return count, nil
}
