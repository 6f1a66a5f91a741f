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

package dbmigrations

import (
	"fmt"
	"log/slog"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

type migration struct {
	ID       int
	Migrate  func(db *gorm.DB) error
	Rollback func(db *gorm.DB) error
}

// migrations must stay ordered by ID; applied IDs are recorded by gormigrate
var migrations = []migration{
	migration001,
	migration002,
	migration003,
	migration004,
	migration005,
}

// Migrate applies every pending migration
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:                 "schema_migrations",
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: true,
	}, toGormigrate(migrations))

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("database migrations applied", "count", len(migrations))
	return nil
}

// RollbackLast reverts the most recently applied migration
func RollbackLast(db *gorm.DB) error {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:    "schema_migrations",
		IDColumnName: "id",
		IDColumnSize: 255,
	}, toGormigrate(migrations))
	return m.RollbackLast()
}

func toGormigrate(ms []migration) []*gormigrate.Migration {
	out := make([]*gormigrate.Migration, 0, len(ms))
	for _, mig := range ms {
		out = append(out, &gormigrate.Migration{
			ID:       fmt.Sprintf("%03d", mig.ID),
			Migrate:  mig.Migrate,
			Rollback: mig.Rollback,
		})
	}
	return out
}

func runSQL(db *gorm.DB, statements ...string) error {
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
