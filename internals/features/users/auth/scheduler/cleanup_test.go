package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zakatconnect_backend/internals/databases/dbtest"
	authModel "zakatconnect_backend/internals/features/users/auth/model"
)

func TestCleanupBlacklist(t *testing.T) {
	db := dbtest.New(t)
	now := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	ttl := 7 * 24 * time.Hour

	var rows []authModel.TokenBlacklist
	// lebih dari satu batch yang sudah lewat ttl
	for i := 0; i < cleanupBatchSize+3; i++ {
		rows = append(rows, authModel.TokenBlacklist{Token: fmt.Sprintf("old-%d", i), ExpiredAt: now.Add(-ttl - time.Hour)})
	}
	rows = append(rows,
		authModel.TokenBlacklist{Token: "recent", ExpiredAt: now.Add(-time.Hour)},
		authModel.TokenBlacklist{Token: "future", ExpiredAt: now.Add(time.Hour)},
	)
	require.NoError(t, db.CreateInBatches(&rows, 100).Error)

	n, err := CleanupBlacklist(context.Background(), db, ttl, now, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int64(cleanupBatchSize+3), n)

	var left []authModel.TokenBlacklist
	require.NoError(t, db.Unscoped().Order("token").Find(&left).Error)
	require.Len(t, left, 2)
	assert.Equal(t, "future", left[0].Token)
	assert.Equal(t, "recent", left[1].Token)
}

func TestStartBlacklistCleanupScheduler_InvalidSpec(t *testing.T) {
	db := dbtest.New(t)

	_, err := StartBlacklistCleanupScheduler(db, "bukan cron", time.Hour, time.UTC, nil)
	assert.Error(t, err)

	c, err := StartBlacklistCleanupScheduler(db, "0 3 * * *", time.Hour, nil, nil)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
