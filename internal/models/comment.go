package models

import (
	"time"
)

// Comment represents a comment on a post. Deletion is a soft flag;
// inactive comments stay in the table but are excluded from listings.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Content   string    `gorm:"type:varchar(1000);not null;column:content" json:"content"`
	AuthorID  int64     `gorm:"not null;index:comments_author_idx;column:author_id" json:"-"`
	Author    *User     `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	PostID    int64     `gorm:"not null;index:comments_post_created_idx,priority:1;column:post_id" json:"postId"`
	Post      *Post     `gorm:"foreignKey:PostID;references:ID" json:"post,omitempty"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null;index:comments_post_created_idx,priority:2,sort:desc;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
