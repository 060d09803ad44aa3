// Package cli provides CLI commands for the resale application.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resale/internal/core/identity"
	"github.com/example/resale/internal/ctxutil"
	"github.com/example/resale/internal/ports/primary"
	"github.com/example/resale/internal/wire"
)

// AddIdentityFlags registers the persistent --as and --role flags.
func AddIdentityFlags(root *cobra.Command) {
	root.PersistentFlags().String("as", "", "Caller ID (default: actor_id from config)")
	root.PersistentFlags().String("role", "", "Caller role: seller, manager, admin, delivery_agent, customer")
}

// Caller resolves the identity for this invocation from --as/--role,
// falling back to the configured actor.
func Caller(cmd *cobra.Command) (primary.Identity, error) {
	id, _ := cmd.Flags().GetString("as")
	role, _ := cmd.Flags().GetString("role")

	if id == "" || role == "" {
		cfg := wire.Config()
		if id == "" {
			id = cfg.ActorID
		}
		if role == "" {
			role = cfg.Role
		}
	}
	if id == "" || role == "" {
		return primary.Identity{}, fmt.Errorf("no caller: pass --as and --role, or set actor_id and role in .resale/config.json")
	}

	r, err := identity.ParseRole(role)
	if err != nil {
		return primary.Identity{}, err
	}
	return primary.Identity{ID: id, Role: r}, nil
}

// NewContext creates a context.Background() with the caller's ID embedded
// so audit entries are attributed to it.
func NewContext(caller primary.Identity) context.Context {
	ctx := context.Background()
	if caller.ID != "" {
		return ctxutil.WithActorID(ctx, caller.ID)
	}
	return ctx
}

// callerContext is Caller followed by NewContext.
func callerContext(cmd *cobra.Command) (context.Context, primary.Identity, error) {
	caller, err := Caller(cmd)
	if err != nil {
		return nil, primary.Identity{}, err
	}
	return NewContext(caller), caller, nil
}
