package data

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     *string   `db:"full_name" json:"full_name"`
	Email        *string   `db:"email" json:"email"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Todo is a single todo list entry. UserID is nil for rows created before
// authentication existed; those are writable by any authenticated user.
type Todo struct {
	ID     int64  `db:"id" json:"id"`
	Title  string `db:"title" json:"title"`
	Author string `db:"author" json:"author"`
	Done   bool   `db:"done" json:"done"`
	UserID *int64 `db:"user_id" json:"user_id"`
}

// Article is a published post with tags and threaded comments.
type Article struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Author      string `db:"author" json:"author"`
	UserID      *int64 `db:"user_id" json:"user_id"`
	CategoryID  *int64 `db:"category_id" json:"category_id"`

	// Populated by the repository, not stored on the articles table.
	Tags            []string  `db:"-" json:"tags"`
	Comments        []Comment `db:"-" json:"comments,omitempty"`
	DescriptionHTML string    `db:"-" json:"description_html,omitempty"`
}

// Tag is a unique label, created lazily on first use.
type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Comment belongs to one article and optionally replies to another comment
// on the same article. ParentID nil means top-level.
type Comment struct {
	ID          int64  `db:"id" json:"id"`
	Author      string `db:"author" json:"author"`
	Description string `db:"description" json:"description"`
	ArticleID   int64  `db:"article_id" json:"article_id"`
	UserID      *int64 `db:"user_id" json:"user_id"`
	ParentID    *int64 `db:"parent_id" json:"parent_id"`
}

// Category is an immutable seeded lookup value that articles may reference.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a user's append-only conversation log.
type ChatMessage struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
