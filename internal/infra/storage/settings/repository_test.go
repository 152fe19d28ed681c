package settings

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/infra/storage/schema"
	"github.com/m04kA/gig-conflicts/pkg/dbmetrics"
	"github.com/m04kA/gig-conflicts/pkg/psqlbuilder"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	raw, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "settings.db")+"?_time_format=sqlite")
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	_, err = schema.Apply(context.Background(), raw, psqlbuilder.DialectSQLite)
	require.NoError(t, err)

	return NewRepository(dbmetrics.Plain(raw), psqlbuilder.DialectSQLite)
}

func TestRepository_UpsertGetDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "owner-1")
	assert.ErrorIs(t, err, ErrSettingsNotFound)

	created := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	s, err := repo.Upsert(ctx, &domain.OwnerSettings{
		OwnerID:                 "owner-1",
		TravelBufferMinutes:     45,
		UnknownTravelGapMinutes: 90,
		CreatedAt:               created,
		UpdatedAt:               created,
	}, Fields{TravelBuffer: true, UnknownTravelGap: true})
	require.NoError(t, err)
	assert.Equal(t, 45, s.TravelBufferMinutes)
	assert.Equal(t, 90, s.UnknownTravelGapMinutes)
	assert.True(t, created.Equal(s.CreatedAt))

	updated := created.Add(time.Hour)
	s, err = repo.Upsert(ctx, &domain.OwnerSettings{
		OwnerID:                 "owner-1",
		TravelBufferMinutes:     20,
		UnknownTravelGapMinutes: 90,
		CreatedAt:               updated,
		UpdatedAt:               updated,
	}, Fields{TravelBuffer: true, UnknownTravelGap: true})
	require.NoError(t, err)
	assert.Equal(t, 20, s.TravelBufferMinutes)
	assert.True(t, created.Equal(s.CreatedAt))
	assert.True(t, updated.Equal(s.UpdatedAt))

	deleted, err := repo.Delete(ctx, "owner-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "owner-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRepository_UpsertKeepsUnselectedFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	// Первая запись создает строку целиком, в том числе невыбранный порог
	s, err := repo.Upsert(ctx, &domain.OwnerSettings{
		OwnerID:                 "owner-1",
		TravelBufferMinutes:     60,
		UnknownTravelGapMinutes: 120,
		CreatedAt:               at,
		UpdatedAt:               at,
	}, Fields{TravelBuffer: true})
	require.NoError(t, err)
	assert.Equal(t, 60, s.TravelBufferMinutes)
	assert.Equal(t, 120, s.UnknownTravelGapMinutes)

	// Два частичных обновления с устаревшими значениями второго поля
	_, err = repo.Upsert(ctx, &domain.OwnerSettings{
		OwnerID:                 "owner-1",
		TravelBufferMinutes:     30,
		UnknownTravelGapMinutes: 90,
		CreatedAt:               at.Add(time.Minute),
		UpdatedAt:               at.Add(time.Minute),
	}, Fields{UnknownTravelGap: true})
	require.NoError(t, err)

	s, err = repo.Upsert(ctx, &domain.OwnerSettings{
		OwnerID:                 "owner-1",
		TravelBufferMinutes:     45,
		UnknownTravelGapMinutes: 120,
		CreatedAt:               at.Add(2 * time.Minute),
		UpdatedAt:               at.Add(2 * time.Minute),
	}, Fields{TravelBuffer: true})
	require.NoError(t, err)

	assert.Equal(t, 45, s.TravelBufferMinutes)
	assert.Equal(t, 90, s.UnknownTravelGapMinutes)
	assert.True(t, at.Equal(s.CreatedAt))
	assert.True(t, at.Add(2*time.Minute).Equal(s.UpdatedAt))
}
