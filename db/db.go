// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package db

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/otaforge/ota-update-service/config"
)

var (
	dbInstance *gorm.DB
	dbOnce     sync.Once
)

// GetDB returns the process wide connection pool, opening it on first use
func GetDB() *gorm.DB {
	dbOnce.Do(func() {
		cfg := config.GetConfig()
		conn, err := Open(cfg.POSTGRESQL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		dbInstance = conn
	})
	return dbInstance
}

// Open connects to postgres with the pool settings from pgCfg
func Open(pgCfg config.POSTGRESQL) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pgCfg.Host, pgCfg.Port, pgCfg.User, pgCfg.Password, pgCfg.DBName, pgCfg.SSLMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: pgCfg.SkipDefaultTransaction,
		TranslateError:         true,
		Logger: logger.New(log.New(os.Stdout, "", log.LstdFlags), logger.Config{
			SlowThreshold:             time.Duration(pgCfg.SlowThresholdMilliseconds) * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if pgCfg.MaxIdleCount != nil {
		sqlDB.SetMaxIdleConns(int(*pgCfg.MaxIdleCount))
	}
	if pgCfg.MaxOpenCount != nil {
		sqlDB.SetMaxOpenConns(int(*pgCfg.MaxOpenCount))
	}
	if pgCfg.MaxLifetimeSeconds != nil {
		sqlDB.SetConnMaxLifetime(time.Duration(*pgCfg.MaxLifetimeSeconds) * time.Second)
	}
	if pgCfg.MaxIdleTimeSeconds != nil {
		sqlDB.SetConnMaxIdleTime(time.Duration(*pgCfg.MaxIdleTimeSeconds) * time.Second)
	}
	return gormDB, nil
}

type txKey struct{}

// Conn returns the transaction carried by ctx, or fallback bound to ctx when there is none
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

// TransactionManager runs a unit of work atomically. Repositories called with the
// context handed to fn join the same transaction.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormTransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &gormTransactionManager{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// A call made with a context that already carries a transaction nests as a savepoint.
func (m *gormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return Conn(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
