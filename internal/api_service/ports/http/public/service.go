package public

import (
	"context"

	"github.com/google/uuid"
	"github.com/langowen/converter/internal/entities"
)

type Service interface {
	FetchCurrencies(ctx context.Context) (entities.Catalog, error)
	ResolveRates(ctx context.Context, base string, targets []string) (*entities.RateTable, error)
	Convert(ctx context.Context, selection entities.Selection) *entities.Conversion
	OpenSession(ctx context.Context, id uuid.UUID, initial entities.Selection) (*entities.Session, bool, error)
	GetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	UpdateSelection(ctx context.Context, id uuid.UUID, selection entities.Selection) (*entities.Session, error)
}
