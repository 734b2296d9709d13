package models

import (
	"time"
)

// Post represents a blog post
type Post struct {
	ID      int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Title   string `gorm:"type:varchar(200);not null;column:title" json:"title"`
	Content string `gorm:"type:text;not null;column:content" json:"content"`
	// Tags keeps the ordered tag sequence exactly as the author gave it,
	// lowercased and trimmed. Duplicates are not collapsed.
	Tags        TagList   `gorm:"type:jsonb;serializer:json;column:tags" json:"tags"`
	AuthorID    int64     `gorm:"not null;index:posts_author_created_idx,priority:1;column:author_id" json:"-"`
	Author      *User     `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	IsPublished bool      `gorm:"not null;default:true;column:is_published" json:"isPublished"`
	ViewCount   int64     `gorm:"not null;default:0;column:view_count" json:"viewCount"`
	CreatedAt   time.Time `gorm:"not null;index:posts_author_created_idx,priority:2,sort:desc;column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`

	// Comments is populated only on detail fetches (active comments, newest first)
	Comments []Comment `gorm:"foreignKey:PostID;references:ID" json:"comments,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostTag is a normalized post-to-tag row used for indexed tag filtering.
// Unlike Post.Tags it holds each tag once per post.
type PostTag struct {
	PostID int64  `gorm:"primaryKey;column:post_id"`
	Tag    string `gorm:"type:varchar(20);primaryKey;index:post_tags_tag_idx;column:tag"`
}

// TableName specifies the table name for PostTag
func (PostTag) TableName() string {
	return "post_tags"
}

// TagRows builds the deduplicated post_tags rows for a post
func TagRows(postID int64, tags TagList) []PostTag {
	seen := make(map[string]bool, len(tags))
	rows := make([]PostTag, 0, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		rows = append(rows, PostTag{PostID: postID, Tag: tag})
	}
	return rows
}
