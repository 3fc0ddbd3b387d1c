package lims

import (
	"context"
	"fmt"
	"strconv"

	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// CreateUser adds an operator identity. Usernames are unique; a duplicate
// returns ErrDuplicateUsername. Role defaults to analyst.
func (s *Service) CreateUser(ctx context.Context, actor, username, role string, active bool) (*types.User, error) {
	actor = actorOrAnon(actor)

	if err := required("username", username); err != nil {
		return nil, err
	}
	if role == "" {
		role = types.RoleAnalyst
	}
	if !types.ValidRole(role) {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidRole, role)
	}

	u := types.User{
		Username:  username,
		Role:      role,
		Active:    active,
		CreatedAt: s.store.Now(),
	}
	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		id, err := tx.InsertUser(ctx, &u)
		if err != nil {
			return err
		}
		u.ID = id
		return s.audit(ctx, tx, types.EntityUser, strconv.FormatInt(id, 10), types.ActionCreate, actor,
			map[string]any{"role": role})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user created", "username", username, "role", role, "actor", actor)
	return &u, nil
}
