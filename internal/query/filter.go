package query

import "strings"

// Clause is one predicate of a store-agnostic filter. A storage adapter
// translates clauses into its native query language.
type Clause interface {
	isClause()
}

// Equals matches documents whose field equals the value
type Equals struct {
	Field string
	Value interface{}
}

// In matches documents whose field holds any of the values
type In struct {
	Field  string
	Values []string
}

// TextSearch routes to the store's indexed free-text search over title and content
type TextSearch struct {
	Query string
}

// None matches nothing. Produced when a filter input resolved to an
// impossible condition (e.g. an author fragment that matched no user).
type None struct{}

func (Equals) isClause()     {}
func (In) isClause()         {}
func (TextSearch) isClause() {}
func (None) isClause()       {}

// Sort describes the requested ordering. The field is passed through to the
// store verbatim; no allow-list is applied at this layer.
type Sort struct {
	Field string
	Desc  bool
}

// NewSort builds a Sort from raw query parameters. Defaults to createdAt
// descending; any order token other than "asc" means descending.
func NewSort(field, order string) Sort {
	if field == "" {
		field = "createdAt"
	}
	return Sort{
		Field: field,
		Desc:  strings.ToLower(order) != "asc",
	}
}

// Filter combines clauses (implicitly AND-ed) with an ordering
type Filter struct {
	Clauses []Clause
	Sort    Sort
}

// AuthorMatch carries the outcome of resolving a free-text author fragment
// to a user. A queried-but-unmatched author must yield zero results, not
// an ignored filter.
type AuthorMatch struct {
	Queried bool
	Found   bool
	ID      int64
}

// PostFilter holds the resolved list-query inputs for posts
type PostFilter struct {
	PublishedOnly bool
	Author        AuthorMatch
	Tags          []string
	Search        string
}

// Build produces the filter descriptor for a post listing
func (f PostFilter) Build(sort Sort) Filter {
	var clauses []Clause

	if f.PublishedOnly {
		clauses = append(clauses, Equals{Field: "isPublished", Value: true})
	}

	if f.Author.Queried {
		if f.Author.Found {
			clauses = append(clauses, Equals{Field: "author", Value: f.Author.ID})
		} else {
			clauses = append(clauses, None{})
		}
	}

	if len(f.Tags) > 0 {
		clauses = append(clauses, In{Field: "tags", Values: f.Tags})
	}

	if f.Search != "" {
		clauses = append(clauses, TextSearch{Query: f.Search})
	}

	return Filter{Clauses: clauses, Sort: sort}
}

// ParseTags splits a comma-separated tag list, trimming, lowercasing and
// dropping empty entries
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
