// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads the internal project table and builds the
// term-frequency index the internal retriever ranks against. The store is
// constructed once at startup and is read-only afterwards; a missing or
// unreadable table yields an empty store, not an error.
package corpus

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/littlescienceai/littlesci/pkg/types"
)

// defaultMaxFeatures caps the index vocabulary when the config leaves it zero.
const defaultMaxFeatures = 5000

// columns the loader looks for in the header row. Matching is
// case-insensitive and whitespace-trimmed.
const (
	colTitle    = "project title"
	colYear     = "year"
	colCategory = "category"
	colCountry  = "fair country"
	colRegion   = "fair state"
	colAwards   = "awards"
)

// Store holds the immutable corpus rows and the pre-fitted title index.
type Store struct {
	rows   []types.CorpusRow
	index  *Index
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets an optional logger for load diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Load reads the corpus table at cfg.Path (.xlsx or .csv) and fits the
// title index. Any load failure produces an empty store; retrieval over an
// empty store returns no results.
func Load(cfg types.CorpusConfig, opts ...Option) *Store {
	s := &Store{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	records, err := readTable(cfg.Path)
	if err != nil {
		s.logger.Warn("corpus load failed, continuing with empty store",
			zap.String("path", cfg.Path), zap.Error(err))
		s.index = fitIndex(nil, maxFeatures(cfg))
		return s
	}

	s.rows = toRows(records)

	titles := make([]string, len(s.rows))
	for i, r := range s.rows {
		titles[i] = r.Title
	}
	s.index = fitIndex(titles, maxFeatures(cfg))

	s.logger.Info("corpus loaded",
		zap.String("path", cfg.Path),
		zap.Int("rows", len(s.rows)),
		zap.Int("vocabulary", s.index.VocabularySize()))
	return s
}

func maxFeatures(cfg types.CorpusConfig) int {
	if cfg.MaxFeatures > 0 {
		return cfg.MaxFeatures
	}
	return defaultMaxFeatures
}

// Rows returns the loaded corpus rows in table order.
func (s *Store) Rows() []types.CorpusRow {
	return s.rows
}

// Index returns the pre-fitted title index.
func (s *Store) Index() *Index {
	return s.index
}

// Empty reports whether the store holds no rows.
func (s *Store) Empty() bool {
	return len(s.rows) == 0
}

// readTable reads the raw cell grid from an .xlsx or .csv file.
func readTable(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	default:
		return readExcel(path)
	}
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// toRows maps the raw grid onto CorpusRows using the header row to locate
// columns. Rows without a title are dropped.
func toRows(records [][]string) []types.CorpusRow {
	if len(records) < 2 {
		return nil
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	titleIdx, ok := cols[colTitle]
	if !ok {
		return nil
	}

	cell := func(rec []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	var rows []types.CorpusRow
	for _, rec := range records[1:] {
		if titleIdx >= len(rec) {
			continue
		}
		title := strings.TrimSpace(rec[titleIdx])
		if title == "" {
			continue
		}
		rows = append(rows, types.CorpusRow{
			Title:    title,
			Year:     cell(rec, colYear),
			Category: cell(rec, colCategory),
			Country:  cell(rec, colCountry),
			Region:   cell(rec, colRegion),
			Awards:   cell(rec, colAwards),
		})
	}
	return rows
}
