package auth

import (
	"errors"

	"github.com/google/uuid"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type Action string

const (
	ActionPostWrite       Action = "post:write"
	ActionCollectionWrite Action = "collection:write"
)

// Policy decides whether a signed-in user may perform an action.
type Policy interface {
	IsAuthorized(user models.User, action Action) bool
}

// AdminPolicy grants every write action to a fixed set of user ids.
type AdminPolicy struct {
	admins map[uuid.UUID]struct{}
}

func NewAdminPolicy(ids ...uuid.UUID) *AdminPolicy {
	admins := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id != uuid.Nil {
			admins[id] = struct{}{}
		}
	}
	return &AdminPolicy{admins: admins}
}

func (p *AdminPolicy) IsAuthorized(user models.User, _ Action) bool {
	_, ok := p.admins[user.ID]
	return ok
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc func(user models.User, action Action) bool

func (f PolicyFunc) IsAuthorized(user models.User, action Action) bool {
	return f(user, action)
}

// Authorize returns ErrUnauthorized for a missing session and ErrForbidden
// when the policy rejects the user.
func Authorize(policy Policy, session *models.Session, action Action) error {
	if session == nil {
		return ErrUnauthorized
	}
	if policy == nil || !policy.IsAuthorized(session.User, action) {
		return ErrForbidden
	}
	return nil
}
