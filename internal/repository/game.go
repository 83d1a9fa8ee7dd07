package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
)

var ErrGameNotFound = fmt.Errorf("game %w", apperror.ErrNotFound)

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	store jsonStore
}

func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		store: jsonStore{client: client, prefix: "game", ttl: ttl},
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return that.store.put(ctx, game.ID, game)
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	var game entity.Game

	found, err := that.store.get(ctx, id, &game)
	if err != nil {
		return &entity.Game{}, err
	}

	if !found {
		return &entity.Game{}, ErrGameNotFound
	}

	return &game, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	return that.store.delete(ctx, id)
}
