package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/langowen/converter/internal/entities"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type SessionStorage interface {
	GetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	SaveSession(ctx context.Context, session *entities.Session) error
}
