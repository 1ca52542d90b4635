package occupancy

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerNowMatchesStoredPrecision(t *testing.T) {
	for i := 0; i < 100; i++ {
		now := serverNow()
		assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
		assert.Equal(t, time.UTC, now.Location())
	}
}

func TestBookSlot_EntryTimeSurvivesTimestamptz(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	slotID := store.addSlot("A1")
	store.addDriver(42)
	svc := NewService(store, nil, nil)

	entry, err := svc.BookSlot(ctx, slotID, 42)
	require.NoError(t, err)

	m := pgtype.NewMap()
	buf, err := m.Encode(pgtype.TimestamptzOID, pgx.BinaryFormatCode, entry, nil)
	require.NoError(t, err)

	var stored time.Time
	require.NoError(t, m.Scan(pgtype.TimestamptzOID, pgx.BinaryFormatCode, buf, &stored))
	assert.True(t, entry.Equal(stored), "returned %v, stored %v", entry, stored)

	occ, err := svc.GetOccupancyByDriver(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, occ.BookedAt)
	assert.True(t, entry.Equal(*occ.BookedAt))
}
