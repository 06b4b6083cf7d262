package seeder

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexivanou/field-translations/internal/model"
)

// TranslationRecord is one line of an import file
type TranslationRecord struct {
	Owner    model.OwnerRef
	Field    string
	Language string
	Value    string
}

// Parser streams translation import files:
//
//	# model_type	model_id	field	language	translation
//	product	1	name	es	Producto de Prueba
//
// Tabs, newlines and backslashes inside the translation are written as \t, \n and \\.
type Parser struct {
	batchSize        int
	allowedLanguages map[string]bool
}

var unescaper = strings.NewReplacer(`\\`, `\`, `\t`, "\t", `\n`, "\n")

// NewParser creates a parser. An empty allowedLanguages accepts every language.
func NewParser(batchSize int, allowedLanguages []string) *Parser {
	allowed := make(map[string]bool)
	for _, lang := range allowedLanguages {
		allowed[lang] = true
	}
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Parser{
		batchSize:        batchSize,
		allowedLanguages: allowed,
	}
}

// ParseFile reads path, or the first .tsv/.txt entry when path is a zip archive
func (p *Parser) ParseFile(path string, callback func(batch []TranslationRecord) error) error {
	if strings.HasSuffix(path, ".zip") {
		r, err := zip.OpenReader(path)
		if err != nil {
			return fmt.Errorf("failed to open zip: %w", err)
		}
		defer r.Close()

		for _, f := range r.File {
			if strings.HasSuffix(f.Name, ".tsv") || strings.HasSuffix(f.Name, ".txt") {
				rc, err := f.Open()
				if err != nil {
					return fmt.Errorf("failed to open file in zip: %w", err)
				}
				defer rc.Close()
				return p.Parse(rc, callback)
			}
		}
		return fmt.Errorf("no tsv file found in zip")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return p.Parse(file, callback)
}

// Parse streams records from reader and hands them to callback in batches.
// Within a batch a repeated (owner, field, language) keeps the last value.
func (p *Parser) Parse(reader io.Reader, callback func(batch []TranslationRecord) error) error {
	buf := make([]byte, 0, 64*1024)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(buf, 1024*1024)

	batch := make([]TranslationRecord, 0, p.batchSize)
	// Key: "type:id:field:lang", Value: index in batch
	seen := make(map[string]int)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := callback(batch); err != nil {
			return fmt.Errorf("batch callback error: %w", err)
		}
		batch = batch[:0]
		seen = make(map[string]int)
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "\t", 5)
		if len(parts) < 5 {
			continue
		}

		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			continue
		}

		record := TranslationRecord{
			Owner:    model.OwnerRef{Type: parts[0], ID: id},
			Field:    parts[2],
			Language: parts[3],
			Value:    unescaper.Replace(parts[4]),
		}
		if record.Owner.Type == "" || record.Field == "" || record.Language == "" {
			continue
		}
		if len(p.allowedLanguages) > 0 && !p.allowedLanguages[record.Language] {
			continue
		}

		key := fmt.Sprintf("%s:%s:%s", record.Owner, record.Field, record.Language)
		if idx, exists := seen[key]; exists {
			batch[idx].Value = record.Value
			continue
		}
		batch = append(batch, record)
		seen[key] = len(batch) - 1

		if len(batch) >= p.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan translations: %w", err)
	}

	return flush()
}
