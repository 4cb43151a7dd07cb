package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/Youssif-Salama/big-data-be/internal/application/query"
	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
	interfaces "github.com/Youssif-Salama/big-data-be/internal/domain/interfaces"
)

var ErrUnknownCollection = errors.New("unknown collection")

// Service is the document store loader used by query pipelines.
type Service struct {
	repo interfaces.DocumentRepository
}

func NewService(repo interfaces.DocumentRepository) *Service {
	return &Service{repo: repo}
}

// Load returns the full collection or a LoadError. Nothing is cached here; the
// collection is read again on every call.
func (s *Service) Load(ctx context.Context, collection document.Collection) ([]document.Document, error) {
	if !collection.IsValid() {
		return nil, query.LoadError(fmt.Sprintf("failed to fetch from %s collection", collection), ErrUnknownCollection)
	}
	docs, err := s.repo.Load(ctx, collection)
	if err != nil {
		if ctx.Err() != nil {
			return nil, query.TimeoutError(err)
		}
		return nil, query.LoadError(fmt.Sprintf("failed to fetch from %s collection", collection), err)
	}
	return docs, nil
}

// Check verifies every collection is readable.
func (s *Service) Check(ctx context.Context) error {
	return s.repo.Check(ctx)
}

func (s *Service) Close() {
	s.repo.Close()
}
