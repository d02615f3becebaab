package migrate

import (
	"ecolakbay-service/internal/carbon"
	"ecolakbay-service/internal/comment"
	"ecolakbay-service/internal/destination"
	"ecolakbay-service/internal/like"
	"ecolakbay-service/internal/media"
	"ecolakbay-service/internal/post"
	"ecolakbay-service/internal/shared/db"
	"ecolakbay-service/internal/user"
)

func AutoMigrateAll(store *db.Store) error {
	return store.DB.AutoMigrate(
		&user.User{},
		&post.Post{},
		&like.PostLike{}, &like.PostLikesSum{},
		&comment.PostComment{}, &comment.PostCommentsSum{},
		&destination.Destination{},
		&media.Media{},
		&carbon.Record{},
	)
}
