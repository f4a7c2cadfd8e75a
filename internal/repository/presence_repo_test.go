package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avissapr/campwatch/internal/models"
	"github.com/avissapr/campwatch/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPresenceRepository_ListLog verifies the log read: events come back in
// id order with direction and timestamp intact.
func TestPresenceRepository_ListLog(t *testing.T) {
	mock := newMock(t)

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2025, 6, 1, 10, 1, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "subject_id", "presence", "logged_at"}).
		AddRow(1, 4, models.PresenceIn, first).
		AddRow(2, 4, models.PresenceOut, second)

	mock.ExpectQuery("FROM presence_log").WillReturnRows(rows)

	repo := repository.NewPresenceRepository()
	events, err := repo.ListLog(context.Background())

	assert.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 4, events[0].SubjectID)
	assert.Equal(t, models.PresenceIn, events[0].Direction)
	assert.Equal(t, first, events[0].LoggedAt)
	assert.Equal(t, models.PresenceOut, events[1].Direction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestPresenceRepository_ListLog_Empty verifies an empty log yields no
// events and no error.
func TestPresenceRepository_ListLog_Empty(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("FROM presence_log").
		WillReturnRows(pgxmock.NewRows([]string{"id", "subject_id", "presence", "logged_at"}))

	repo := repository.NewPresenceRepository()
	events, err := repo.ListLog(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestPresenceRepository_ListLog_QueryError verifies query failures surface
// to the caller.
func TestPresenceRepository_ListLog_QueryError(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery("FROM presence_log").
		WillReturnError(errors.New("connection lost"))

	repo := repository.NewPresenceRepository()
	events, err := repo.ListLog(context.Background())

	assert.Error(t, err)
	assert.Nil(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}
