package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avissapr/campwatch/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatsRepository_GetRosterStats verifies the aggregate query scan.
func TestStatsRepository_GetRosterStats(t *testing.T) {
	mock := newMock(t)

	rows := pgxmock.NewRows([]string{
		"total_persons", "inside_count", "outside_count",
		"cub_count", "scout_count", "venture_count", "rover_count",
		"log_entry_count",
	}).AddRow(24, 20, 4, 10, 8, 4, 2, 157)

	mock.ExpectQuery("FROM persons").WillReturnRows(rows)

	repo := repository.NewStatsRepository()
	stats, err := repo.GetRosterStats(context.Background())

	assert.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 24, stats.TotalPersons)
	assert.Equal(t, 20, stats.InsideCount)
	assert.Equal(t, 4, stats.OutsideCount)
	assert.Equal(t, 10, stats.CubCount)
	assert.Equal(t, 8, stats.ScoutCount)
	assert.Equal(t, 4, stats.VentureCount)
	assert.Equal(t, 2, stats.RoverCount)
	assert.Equal(t, 157, stats.LogEntryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestStatsRepository_GetRosterStats_QueryError verifies error propagation.
func TestStatsRepository_GetRosterStats_QueryError(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("FROM persons").
		WillReturnError(errors.New("connection refused"))

	repo := repository.NewStatsRepository()
	stats, err := repo.GetRosterStats(context.Background())

	assert.Error(t, err)
	assert.Nil(t, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
