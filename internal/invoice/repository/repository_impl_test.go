package repository

import (
	"context"
	"testing"

	"github.com/facturio/facturio/internal/invoice/domain"
	"github.com/facturio/facturio/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementAndGetSequencesPerBucket(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Counter{}))

	counters := ProvideCounter()
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		seq, err := counters.IncrementAndGet(ctx, conn, "03-2024-DEVELOPMENT")
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	seq, err := counters.IncrementAndGet(ctx, conn, "03-2024-CONSULTING")
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq)
}

func TestCounterUpsertPerDialect(t *testing.T) {
	// mysql has no ON CONFLICT ... RETURNING, it must get its own form.
	assert.Contains(t, counterUpsert("mysql"), "ON DUPLICATE KEY UPDATE")
	assert.NotContains(t, counterUpsert("mysql"), "RETURNING")

	for _, dialect := range []string{"postgres", "sqlite"} {
		assert.Contains(t, counterUpsert(dialect), "ON CONFLICT (bucket) DO UPDATE")
		assert.Contains(t, counterUpsert(dialect), "RETURNING seq")
	}
}
