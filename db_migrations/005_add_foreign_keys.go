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
	"gorm.io/gorm"
)

// Referential integrity is enforced on postgres only. App deletion removes
// dependants explicitly inside one transaction so sqlite behaves the same.
var migration005 = migration{
	ID: 5,
	Migrate: func(db *gorm.DB) error {
		if !isPostgres(db) {
			return nil
		}
		addForeignKeysSQL := `
			ALTER TABLE channels
				ADD CONSTRAINT fk_channels_app FOREIGN KEY (app_id) REFERENCES apps(id) ON DELETE CASCADE;
			ALTER TABLE updates
				ADD CONSTRAINT fk_updates_app FOREIGN KEY (app_id) REFERENCES apps(id) ON DELETE CASCADE;
			ALTER TABLE assets
				ADD CONSTRAINT fk_assets_update FOREIGN KEY (update_id) REFERENCES updates(id) ON DELETE CASCADE;
			ALTER TABLE channel_assignments
				ADD CONSTRAINT fk_assignments_app FOREIGN KEY (app_id) REFERENCES apps(id) ON DELETE CASCADE,
				ADD CONSTRAINT fk_assignments_channel FOREIGN KEY (channel_id) REFERENCES channels(id) ON DELETE CASCADE,
				ADD CONSTRAINT fk_assignments_update FOREIGN KEY (update_id) REFERENCES updates(id);
			ALTER TABLE rollback_history
				ADD CONSTRAINT fk_rollback_history_app FOREIGN KEY (app_id) REFERENCES apps(id) ON DELETE CASCADE;
		`
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx, addForeignKeysSQL)
		})
	},
	Rollback: func(db *gorm.DB) error {
		if !isPostgres(db) {
			return nil
		}
		return runSQL(db,
			"ALTER TABLE rollback_history DROP CONSTRAINT IF EXISTS fk_rollback_history_app",
			"ALTER TABLE channel_assignments DROP CONSTRAINT IF EXISTS fk_assignments_update",
			"ALTER TABLE channel_assignments DROP CONSTRAINT IF EXISTS fk_assignments_channel",
			"ALTER TABLE channel_assignments DROP CONSTRAINT IF EXISTS fk_assignments_app",
			"ALTER TABLE assets DROP CONSTRAINT IF EXISTS fk_assets_update",
			"ALTER TABLE updates DROP CONSTRAINT IF EXISTS fk_updates_app",
			"ALTER TABLE channels DROP CONSTRAINT IF EXISTS fk_channels_app",
		)
	},
}
