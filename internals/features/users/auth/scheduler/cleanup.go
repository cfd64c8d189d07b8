package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authRepo "zakatconnect_backend/internals/features/users/auth/repository"
)

const cleanupBatchSize = 500

// CleanupBlacklist menghapus token yang sudah expired lebih lama dari ttl.
// Dijalankan per batch sampai habis.
func CleanupBlacklist(ctx context.Context, db *gorm.DB, ttl time.Duration, now time.Time, log *zap.Logger) (int64, error) {
	deleteBefore := now.Add(-ttl)
	var total int64
	for {
		n, err := authRepo.PurgeExpiredBlacklist(ctx, db, deleteBefore, cleanupBatchSize)
		if err != nil {
			return total, err
		}
		total += n
		if n < cleanupBatchSize {
			break
		}
	}
	if total > 0 {
		log.Info("[CLEANUP] token kadaluarsa dihapus", zap.Int64("count", total))
	} else {
		log.Debug("[CLEANUP] tidak ada token yang memenuhi syarat dihapus")
	}
	return total, nil
}

// StartBlacklistCleanupScheduler mendaftarkan job cron; caller wajib Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB, spec string, ttl time.Duration, loc *time.Location, log *zap.Logger) (*cron.Cron, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("scheduler")
	if loc == nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := CleanupBlacklist(ctx, db, ttl, time.Now(), log); err != nil {
			log.Error("[CLEANUP ERROR] gagal hapus token", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Info("⏰ blacklist cleanup dijadwalkan", zap.String("spec", spec), zap.String("tz", loc.String()))
	return c, nil
}
