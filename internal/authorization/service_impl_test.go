package authorization

import (
	"context"
	"testing"

	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)
	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func TestUserPermissions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := authdomain.Actor{Username: "dev", Role: authdomain.RoleUser}

	assert.NoError(t, svc.Authorize(ctx, actor, ObjectQuotation, ActionCreate))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectPricing, ActionCalculate))
	assert.ErrorIs(t, svc.Authorize(ctx, actor, ObjectQuotation, ActionDecide), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, actor, ObjectQuotation, ActionDelete), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, actor, ObjectUser, ActionCreate), ErrForbidden)
}

func TestManagerInheritsUserPermissions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := authdomain.Actor{Username: "meera", Role: authdomain.RoleManager}

	assert.NoError(t, svc.Authorize(ctx, actor, ObjectQuotation, ActionCreate))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectQuotation, ActionDecide))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectAgentRegistration, ActionDelete))
	assert.ErrorIs(t, svc.Authorize(ctx, actor, ObjectUser, ActionCreate), ErrForbidden)
}

func TestAdminInheritsEverything(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := authdomain.Actor{Username: "root", Role: authdomain.RoleAdmin}

	assert.NoError(t, svc.Authorize(ctx, actor, ObjectQuotation, ActionCreate))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectQuotation, ActionDecide))
	assert.NoError(t, svc.Authorize(ctx, actor, ObjectUser, ActionCreate))
}

func TestRoleChangeReplacesGrouping(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	asUser := authdomain.Actor{Username: "priya", Role: authdomain.RoleUser}
	require.ErrorIs(t, svc.Authorize(ctx, asUser, ObjectQuotation, ActionDecide), ErrForbidden)

	asManager := authdomain.Actor{Username: "priya", Role: authdomain.RoleManager}
	assert.NoError(t, svc.Authorize(ctx, asManager, ObjectQuotation, ActionDecide))

	// Demotion drops the elevated link again.
	require.ErrorIs(t, svc.Authorize(ctx, asUser, ObjectQuotation, ActionDecide), ErrForbidden)
}

func TestAuthorizeRejectsBlankInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	err := svc.Authorize(ctx, authdomain.Actor{}, ObjectQuotation, ActionView)
	assert.ErrorIs(t, err, ErrInvalidActor)

	actor := authdomain.Actor{Username: "dev", Role: authdomain.RoleUser}
	assert.ErrorIs(t, svc.Authorize(ctx, actor, "", ActionView), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, actor, ObjectQuotation, ""), ErrInvalidAction)
}
