// Package ingest loads player datasets from CSV into frames, normalizing
// header names through a synonym library so differently-exported datasets
// present the same column vocabulary.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwinther/scoutline/internal/domain"
)

// SynonymLibrary maps vendor-specific header spellings onto canonical
// column names. Lookups happen after basic normalization, so entries only
// need to cover genuinely different spellings.
type SynonymLibrary struct {
	aliases map[string]string
}

// LoadSynonyms reads a synonym file mapping each canonical column to its
// known aliases. A missing file is not an error: ingestion then relies on
// normalization alone.
func LoadSynonyms(path string) (*SynonymLibrary, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &SynonymLibrary{aliases: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading synonym library: %w", err)
	}
	return ParseSynonyms(data)
}

// ParseSynonyms parses the synonym JSON: {"canonical": ["alias", ...]}.
func ParseSynonyms(data []byte) (*SynonymLibrary, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing synonym library: %w", err)
	}
	lib := &SynonymLibrary{aliases: map[string]string{}}
	for canonical, aliases := range raw {
		canonical = normalize(canonical)
		for _, alias := range aliases {
			lib.aliases[normalize(alias)] = canonical
		}
	}
	return lib, nil
}

// Canonicalize maps one raw header cell to its canonical column name.
func (l *SynonymLibrary) Canonicalize(header string) string {
	norm := normalize(header)
	if canonical, ok := l.aliases[norm]; ok {
		return canonical
	}
	return norm
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}

// ReadCSV loads a full dataset from r. Headers pass through the synonym
// library; cells parse per domain.ParseValue. Rows shorter than the header
// are padded with nulls, longer rows are an error.
func ReadCSV(r io.Reader, lib *SynonymLibrary) (*domain.Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = lib.Canonicalize(h)
	}

	frame, err := domain.NewFrame(cols)
	if err != nil {
		return nil, fmt.Errorf("dataset header: %w", err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row %d: %w", line, err)
		}
		if len(record) > len(cols) {
			return nil, fmt.Errorf("dataset row %d has %d cells, header has %d", line, len(record), len(cols))
		}
		vals := make([]domain.Value, len(cols))
		for i := range cols {
			if i < len(record) {
				vals[i] = domain.ParseValue(record[i])
			} else {
				vals[i] = domain.Null()
			}
		}
		if err := frame.AppendRow(vals); err != nil {
			return nil, err
		}
		line++
	}
	return frame, nil
}

// ReadCSVFile is ReadCSV over a file path.
func ReadCSVFile(path string, lib *SynonymLibrary) (*domain.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, lib)
}
