package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
)

var (
	postOrder           = []string{"published_at DESC NULLS LAST", "created_at DESC", "id ASC"}
	collectionItemOrder = []string{"featured DESC", "NULLIF(display_order, 0) ASC NULLS LAST", "created_at DESC", "id ASC"}
	updatedOrder        = []string{"updated_at DESC", "id ASC"}
)

func postOrderBy(sort models.SortOrder) []string {
	if sort == models.SortUpdated {
		return updatedOrder
	}
	return postOrder
}

func collectionItemOrderBy(sort models.SortOrder) []string {
	if sort == models.SortUpdated {
		return updatedOrder
	}
	return collectionItemOrder
}

// postPredicate renders a PostFilter as a WHERE clause. An empty And means
// no constraint.
func postPredicate(f models.PostFilter) sq.And {
	where := sq.And{}

	if f.Published != nil {
		where = append(where, sq.Eq{"published": *f.Published})
	}
	if f.ExcludeID != uuid.Nil {
		where = append(where, sq.NotEq{"id": f.ExcludeID})
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := likePattern(term)
		where = append(where, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"content": pattern},
			sq.ILike{"excerpt": pattern},
		})
	}

	return where
}

func collectionItemPredicate(f models.CollectionFilter) sq.And {
	where := sq.And{}

	if f.Published != nil {
		where = append(where, sq.Eq{"published": *f.Published})
	}
	if f.Type != nil {
		where = append(where, sq.Eq{"type": string(*f.Type)})
	}
	if f.Featured != nil {
		where = append(where, sq.Eq{"featured": *f.Featured})
	}
	if len(f.Tags) > 0 {
		where = append(where, sq.Expr("tags && ?", pq.Array(f.Tags)))
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := likePattern(term)
		where = append(where, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	return where
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring match, escaping LIKE wildcards.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func applyWhere(b sq.SelectBuilder, where sq.And) sq.SelectBuilder {
	if len(where) == 0 {
		return b
	}
	return b.Where(where)
}
