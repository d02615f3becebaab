package like

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecolakbay-service/internal/shared/db"
)

// Counters age out so a drifted value gets rebuilt from the sums table
// instead of living forever.
const counterTTL = 12 * time.Hour

type Repository interface {
	Like(uid string, postID uint64) (int64, error)
	Unlike(uid string, postID uint64) (int64, error)
	GetCount(postID uint64, forUID string) (int64, bool, error)
	ListByUser(uid string) ([]uint64, error)
}

type repo struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(s *db.Store, r *redis.Client) Repository {
	return &repo{db: s.DB, rdb: r}
}

func likeKey(postID uint64) string { return fmt.Sprintf("community:likes:%d", postID) }

// warm rebuilds the Redis counter from the authoritative sums row. Posts
// nobody ever liked have no row and warm to zero.
func (r *repo) warm(ctx context.Context, postID uint64) (int64, error) {
	var agg PostLikesSum
	if err := r.db.First(&agg, "post_id = ?", postID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		agg.LikesCount = 0
	}
	_ = r.rdb.Set(ctx, likeKey(postID), agg.LikesCount, counterTTL).Err()
	return agg.LikesCount, nil
}

func (r *repo) Like(uid string, postID uint64) (int64, error) {
	ctx := context.Background()
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&PostLike{PostID: postID, UserID: uid}).Error; err != nil {
		return 0, err
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]any{"likes_count": gorm.Expr("post_likes_sums.likes_count + EXCLUDED.likes_count")}),
	}).Create(&PostLikesSum{PostID: postID, LikesCount: 1}).Error; err != nil {
		return 0, err
	}
	n, err := r.rdb.Incr(ctx, likeKey(postID)).Result()
	if err != nil || n <= 1 {
		// Cold or expired counter; Incr on a missing key yields 1 even when
		// the real count is higher.
		return r.warm(ctx, postID)
	}
	_ = r.rdb.Expire(ctx, likeKey(postID), counterTTL).Err()
	return n, nil
}

func (r *repo) Unlike(uid string, postID uint64) (int64, error) {
	ctx := context.Background()
	if err := r.db.Delete(&PostLike{}, "post_id=? AND user_id=?", postID, uid).Error; err != nil {
		return 0, err
	}
	if err := r.db.Exec(
		"UPDATE post_likes_sums SET likes_count = GREATEST(likes_count-1,0) WHERE post_id = ?",
		postID,
	).Error; err != nil {
		return 0, err
	}
	n, err := r.rdb.Decr(ctx, likeKey(postID)).Result()
	if err != nil || n < 0 {
		return r.warm(ctx, postID)
	}
	_ = r.rdb.Expire(ctx, likeKey(postID), counterTTL).Err()
	return n, nil
}

func (r *repo) GetCount(postID uint64, forUID string) (int64, bool, error) {
	ctx := context.Background()
	count, err := r.rdb.Get(ctx, likeKey(postID)).Int64()
	if err != nil {
		if count, err = r.warm(ctx, postID); err != nil {
			return 0, false, err
		}
	}
	if forUID == "" {
		return count, false, nil
	}
	var exists int64
	if err := r.db.Model(&PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, forUID).
		Count(&exists).Error; err != nil {
		return 0, false, err
	}
	return count, exists > 0, nil
}

func (r *repo) ListByUser(uid string) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&PostLike{}).
		Where("user_id = ?", uid).
		Pluck("post_id", &ids).Error
	return ids, err
}
