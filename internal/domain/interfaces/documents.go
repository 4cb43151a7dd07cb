package interfaces

import (
	"context"

	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
)

type DocumentRepository interface {
	Load(ctx context.Context, collection document.Collection) ([]document.Document, error)
	Check(ctx context.Context) error
	Close()
}
