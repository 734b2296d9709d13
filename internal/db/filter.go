package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/dazeez1/blog-api/internal/query"
)

// columnFor maps API-level field names to post columns. The set is closed:
// the result ends up inside an ORDER BY expression, where placeholders cannot
// be used, so anything unknown sorts by created_at instead of reaching SQL.
func columnFor(field string) string {
	switch field {
	case "createdAt":
		return "created_at"
	case "updatedAt":
		return "updated_at"
	case "viewCount":
		return "view_count"
	case "isPublished":
		return "is_published"
	case "author":
		return "author_id"
	case "title":
		return "title"
	default:
		return "created_at"
	}
}

// applyClauses translates the store-agnostic filter clauses into gorm
// conditions on the posts table
func applyClauses(tx *gorm.DB, clauses []query.Clause) *gorm.DB {
	for _, clause := range clauses {
		switch c := clause.(type) {
		case query.Equals:
			tx = tx.Where(fmt.Sprintf("%s = ?", columnFor(c.Field)), c.Value)
		case query.In:
			// Tag matching is "any of" against the normalized post_tags rows
			tx = tx.Where("posts.id IN (SELECT post_id FROM post_tags WHERE tag IN ?)", c.Values)
		case query.TextSearch:
			tx = tx.Where(
				"to_tsvector('english', title || ' ' || content) @@ plainto_tsquery('english', ?)",
				c.Query,
			)
		case query.None:
			tx = tx.Where("1 = 0")
		}
	}
	return tx
}

// orderExpr renders the sort descriptor as a SQL ORDER BY expression
func orderExpr(s query.Sort) string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", columnFor(s.Field), dir)
}
