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

package repositories_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/otaforge/ota-update-service/db"
	"github.com/otaforge/ota-update-service/models"
	"github.com/otaforge/ota-update-service/repositories"
	"github.com/otaforge/ota-update-service/tests/apitestutils"
)

func TestChannelRepo_GetOrCreateChannel(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "channels-app")
	repo := repositories.NewChannelRepo(gormDB)
	ctx := context.Background()

	existing := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelStaging)
	got, err := repo.GetOrCreateChannel(ctx, app.ID, models.ChannelStaging)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)

	beta, err := repo.GetOrCreateChannel(ctx, app.ID, "beta")
	require.NoError(t, err)
	again, err := repo.GetOrCreateChannel(ctx, app.ID, "beta")
	require.NoError(t, err)
	assert.Equal(t, beta.ID, again.ID)

	channels, err := repo.ListChannels(ctx, app.ID)
	require.NoError(t, err)
	assert.Len(t, channels, 3)

	err = repo.CreateChannel(ctx, &models.Channel{AppID: app.ID, Name: "beta"})
	assert.True(t, db.IsUniqueViolation(err))

	missing, err := repo.GetChannelByName(ctx, app.ID, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

const insertChannelSQL = "INSERT INTO channels (id, app_id, name, created_at) VALUES (?, ?, ?, ?)"

// insertCompetingChannel writes a channel row on the connection of the running statement
func insertCompetingChannel(tx *gorm.DB, appID, name string) (string, error) {
	id := uuid.NewString()
	_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, insertChannelSQL, id, appID, name, time.Now().UTC())
	return id, err
}

func TestChannelRepo_GetOrCreateChannelLosesRace(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "race-app")
	repo := repositories.NewChannelRepo(gormDB)
	txManager := db.NewTransactionManager(gormDB)

	// another writer creates the channel between the lookup and the insert
	var armed atomic.Bool
	armed.Store(true)
	var winnerID string
	var insertErr error
	err := gormDB.Callback().Query().After("gorm:query").Register("test:competing_channel", func(tx *gorm.DB) {
		if tx.Statement.Table != "channels" || tx.RowsAffected != 0 || !armed.CompareAndSwap(true, false) {
			return
		}
		winnerID, insertErr = insertCompetingChannel(tx, app.ID, "beta")
	})
	require.NoError(t, err)

	var got *models.Channel
	err = txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
		var err error
		got, err = repo.GetOrCreateChannel(ctx, app.ID, "beta")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, insertErr)
	require.NotEmpty(t, winnerID)
	assert.Equal(t, winnerID, got.ID)
	assert.Equal(t, int64(1), apitestutils.CountRowsWhere(t, gormDB, &models.Channel{},
		"app_id = ? AND name = ?", app.ID, "beta"))
}

func TestChannelRepo_GetOrCreateChannelConflictWithoutRow(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "vanish-app")
	repo := repositories.NewChannelRepo(gormDB)

	// the conflicting row lives only inside the savepoint and is rolled back with it
	var armed atomic.Bool
	armed.Store(true)
	var insertErr error
	err := gormDB.Callback().Create().Before("gorm:create").Register("test:conflicting_channel", func(tx *gorm.DB) {
		if tx.Statement.Table != "channels" || !armed.CompareAndSwap(true, false) {
			return
		}
		_, insertErr = insertCompetingChannel(tx, app.ID, "beta")
	})
	require.NoError(t, err)

	got, err := repo.GetOrCreateChannel(context.Background(), app.ID, "beta")
	require.NoError(t, insertErr)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, db.IsUniqueViolation(err))
	assert.Equal(t, int64(0), apitestutils.CountRowsWhere(t, gormDB, &models.Channel{},
		"app_id = ? AND name = ?", app.ID, "beta"))
}

func TestAssignmentRepo_UpsertAssignment(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "assign-app")
	production := apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction)
	first := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	second := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	repo := repositories.NewAssignmentRepo(gormDB)
	ctx := context.Background()

	key := models.AssignmentKey{AppID: app.ID, ChannelID: production.ID, RuntimeVersion: "1.0.0", Platform: models.PlatformIOS}
	created, err := repo.UpsertAssignment(ctx, key, first.ID, 25)
	require.NoError(t, err)
	assert.Equal(t, first.ID, created.UpdateID)
	assert.Equal(t, 25.0, created.RolloutPercent)

	replaced, err := repo.UpsertAssignment(ctx, key, second.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, second.ID, replaced.UpdateID)
	assert.Equal(t, 100.0, replaced.RolloutPercent)
	assert.Equal(t, int64(1), apitestutils.CountRows(t, gormDB, &models.ChannelAssignment{}))

	android := key
	android.Platform = models.PlatformAndroid
	empty, err := repo.GetAssignment(ctx, android)
	require.NoError(t, err)
	assert.Nil(t, empty)

	live, err := repo.ListLiveAssignments(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, models.ChannelProduction, live[0].ChannelName)
	assert.Equal(t, created.ID, live[0].AssignmentID)

	require.NoError(t, repo.RepointAssignment(ctx, created.ID, first.ID))
	require.NoError(t, repo.SetRolloutPercent(ctx, created.ID, 10))
	got, err := repo.GetAssignmentByID(ctx, production.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.UpdateID)
	assert.Equal(t, 10.0, got.RolloutPercent)
}

func TestUpdateRepo(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "update-app")
	base := time.Now().UTC().Add(-time.Hour)
	older := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS, apitestutils.WithCreatedAt(base))
	newer := apitestutils.CreateUpdate(t, gormDB, app, "1.1.0", models.PlatformIOS, apitestutils.WithCreatedAt(base.Add(time.Minute)))
	apitestutils.CreateUpdate(t, gormDB, app, "2.0.0", models.PlatformAndroid, apitestutils.WithCreatedAt(base.Add(2*time.Minute)))
	repo := repositories.NewUpdateRepo(gormDB)
	ctx := context.Background()

	updates, err := repo.ListUpdates(ctx, app.ID, repositories.UpdateFilter{Platform: models.PlatformIOS})
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, newer.ID, updates[0].ID)
	assert.Equal(t, older.ID, updates[1].ID)

	updates, err = repo.ListUpdates(ctx, app.ID, repositories.UpdateFilter{RuntimeVersion: "1.0.0"})
	require.NoError(t, err)
	require.Len(t, updates, 1)

	versions, err := repo.ListRuntimeVersions(ctx, app.ID, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1.0.0", "1.1.0", "2.0.0"}, versions)

	require.NoError(t, repo.ToggleEnabled(ctx, older.ID))
	got, err := repo.GetUpdateByID(ctx, app.ID, older.ID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	keys, err := repo.ListObjectKeys(ctx, app.ID)
	require.NoError(t, err)
	assert.Len(t, keys, 6)
	assert.Contains(t, keys, older.BundleKey)

	none, err := repo.GetUpdateByID(ctx, "other-app", older.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAppRepo_DeleteAppCascade(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	app := apitestutils.CreateApp(t, gormDB, "doomed")
	keep := apitestutils.CreateApp(t, gormDB, "survivor")
	update := apitestutils.CreateUpdate(t, gormDB, app, "1.0.0", models.PlatformIOS)
	apitestutils.AssignUpdate(t, gormDB, apitestutils.GetChannel(t, gormDB, app.ID, models.ChannelProduction), update, 100)
	apitestutils.CreateUpdate(t, gormDB, keep, "1.0.0", models.PlatformIOS)

	repo := repositories.NewAppRepo(gormDB)
	txManager := db.NewTransactionManager(gormDB)
	err := txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return repo.DeleteAppCascade(ctx, app.ID)
	})
	require.NoError(t, err)

	gone, err := repo.GetAppByKey(context.Background(), "doomed")
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, int64(1), apitestutils.CountRows(t, gormDB, &models.App{}))
	assert.Equal(t, int64(2), apitestutils.CountRows(t, gormDB, &models.Channel{}))
	assert.Equal(t, int64(1), apitestutils.CountRows(t, gormDB, &models.Update{}))
	assert.Equal(t, int64(1), apitestutils.CountRows(t, gormDB, &models.Asset{}))
	assert.Equal(t, int64(0), apitestutils.CountRows(t, gormDB, &models.ChannelAssignment{}))
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	gormDB := apitestutils.NewTestDB(t)
	repo := repositories.NewAppRepo(gormDB)
	txManager := db.NewTransactionManager(gormDB)

	err := txManager.WithinTransaction(context.Background(), func(ctx context.Context) error {
		require.NoError(t, repo.CreateApp(ctx, &models.App{ID: "a1", AppKey: "tx-app", Name: "tx", CreatedAt: time.Now().UTC()}))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, int64(0), apitestutils.CountRows(t, gormDB, &models.App{}))
}
