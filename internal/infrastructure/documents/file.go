package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

var ErrMissingHits = errors.New("export has no hits.hits array")

// exportFile is the bulk-export shape; only hits.hits is consumed.
type exportFile struct {
	Hits *struct {
		Hits *[]document.Document `json:"hits"`
	} `json:"hits"`
}

// FileRepository reads collections from <dir>/<collection>.json on every Load.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) Path(collection document.Collection) string {
	return filepath.Join(r.dir, collection.String()+".json")
}

func (r *FileRepository) Load(ctx context.Context, collection document.Collection) ([]document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := r.Path(collection)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := DecodeExport(data)
	if err != nil {
		return nil, fmt.Errorf("parse file %s: %w", path, err)
	}
	return docs, nil
}

// Check fails unless every collection file exists.
func (r *FileRepository) Check(ctx context.Context) error {
	var errs []error
	for _, collection := range document.Collections() {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := r.Path(collection)
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s collection: %w", collection, err))
			continue
		}
		if info.IsDir() {
			errs = append(errs, fmt.Errorf("%s collection: %s is a directory", collection, path))
		}
	}
	return errors.Join(errs...)
}

func (r *FileRepository) Close() {}

// DecodeExport extracts hits.hits from a bulk export, keeping numbers as json.Number.
func DecodeExport(data []byte) ([]document.Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var export exportFile
	if err := decoder.Decode(&export); err != nil {
		return nil, err
	}
	if export.Hits == nil || export.Hits.Hits == nil {
		return nil, ErrMissingHits
	}
	return *export.Hits.Hits, nil
}
