package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
)

var ErrPlayerNotFound = fmt.Errorf("player %w", apperror.ErrNotFound)

type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type dbPlayer struct {
	store jsonStore
}

func NewPlayerRepository(client *redis.Client, ttl time.Duration) PlayerRepository {
	return &dbPlayer{
		store: jsonStore{client: client, prefix: "player", ttl: ttl},
	}
}

func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	return that.store.put(ctx, player.ID, player)
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	var player entity.Player

	found, err := that.store.get(ctx, id, &player)
	if err != nil {
		return &entity.Player{}, err
	}

	if !found {
		return &entity.Player{}, ErrPlayerNotFound
	}

	return &player, nil
}
