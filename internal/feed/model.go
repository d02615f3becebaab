package feed

// FeedPost is the renderable projection of a post: the gateway's record plus
// the current user's like state and author display fields.
type FeedPost struct {
	Post
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	UserLiked    bool   `json:"user_liked"`
}

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is a user-visible message for whatever toast mechanism the
// host page uses. Failures inside the store surface here, never as panics or
// errors thrown into the rendering layer.
type Notification struct {
	Message  string
	Severity Severity
}
