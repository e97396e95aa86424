package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/repository"
	"github.com/sayemkalim/casesync/internal/store/memory"
	"github.com/sayemkalim/casesync/internal/store/mysql"
	"github.com/sayemkalim/casesync/internal/store/redis"
	"go.uber.org/zap"
)

func NewNotificationStore(cfg *config.Config, logger *zap.Logger) (repository.NotificationRepository, error) {
	if cfg.MySQLDSN == "" {
		return memory.New(logger), nil
	}
	sqlDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Error("mysql open failed", zap.Error(err))
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Error("mysql ping failed", zap.Error(err))
		return nil, err
	}
	return mysql.New(sqlDB, logger), nil
}

func NewSnapshotStore(cfg *config.Config, logger *zap.Logger) (repository.SnapshotRepository, error) {
	if cfg.RedisAddr == "" {
		return memory.NewSnapshotStore(logger), nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return nil, err
	}
	return redis.NewSnapshotStore(client, cfg.TimerStoreKey, logger), nil
}
