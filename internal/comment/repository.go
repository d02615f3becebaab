package comment

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ecolakbay-service/internal/shared/db"
)

type Repository interface {
	Create(uid string, postID uint64, text string) (*PostComment, error)
	ListByPost(postID uint64, limit, offset int) ([]PostComment, error)
	Count(postID uint64) (int64, error)
	IncSum(postID uint64, delta int) error
}

type repo struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewRepository(s *db.Store, r *redis.Client) Repository {
	return &repo{db: s.DB, rdb: r}
}

func ckey(postID uint64) string { return fmt.Sprintf("community:comments:%d", postID) }

func (r *repo) Create(uid string, postID uint64, text string) (*PostComment, error) {
	pc := &PostComment{PostID: postID, UserID: uid, Text: text}
	if err := r.db.Create(pc).Error; err != nil {
		return nil, err
	}
	_ = r.IncSum(postID, +1)
	return pc, nil
}

func (r *repo) IncSum(postID uint64, delta int) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]any{"comments_count": gorm.Expr("post_comments_sums.comments_count + EXCLUDED.comments_count")}),
	}).Create(&PostCommentsSum{PostID: postID, CommentsCount: int64(delta)}).Error; err != nil {
		return err
	}
	ctx := context.Background()
	if delta > 0 {
		_, _ = r.rdb.Incr(ctx, ckey(postID)).Result()
	} else {
		_, _ = r.rdb.Decr(ctx, ckey(postID)).Result()
	}
	return nil
}

// ListByPost returns comments oldest first, the order threads render in.
func (r *repo) ListByPost(postID uint64, limit, offset int) ([]PostComment, error) {
	var out []PostComment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC").Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *repo) Count(postID uint64) (int64, error) {
	var cs PostCommentsSum
	if err := r.db.First(&cs, "post_id = ?", postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return cs.CommentsCount, nil
}
