package api

import (
	"github.com/dazeez1/blog-api/internal/auth"
	"github.com/dazeez1/blog-api/internal/models"
)

// Decision is the outcome of an authorization check on a located resource
type Decision int

const (
	// Allow permits the operation
	Allow Decision = iota
	// Forbidden rejects the operation for an authenticated actor
	Forbidden
)

// AuthorizeOwnerOrAdmin permits the resource owner and any admin.
// Used for post update/delete and comment delete.
func AuthorizeOwnerOrAdmin(actor auth.Identity, ownerID int64) Decision {
	if actor.IsAdmin() {
		return Allow
	}
	if actor.UserID == ownerID {
		return Allow
	}
	return Forbidden
}

// AuthorizeOwnerOnly permits only the resource owner. Admins get no
// override here; comment updates are owner-only.
func AuthorizeOwnerOnly(actor auth.Identity, ownerID int64) Decision {
	if actor.UserID == ownerID {
		return Allow
	}
	return Forbidden
}

// CanViewPost reports whether the actor may read the post. A published post
// is visible to anyone. An unpublished post is visible only to its author;
// admins get no special read visibility.
func CanViewPost(actor *auth.Identity, post *models.Post) bool {
	if post.IsPublished {
		return true
	}
	return actor != nil && actor.UserID == post.AuthorID
}
