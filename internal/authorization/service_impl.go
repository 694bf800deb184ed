package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(_ context.Context, actor authdomain.Actor, object, action string) error {
	username := strings.TrimSpace(actor.Username)
	if username == "" {
		return ErrInvalidActor
	}
	if strings.TrimSpace(object) == "" {
		return ErrInvalidObject
	}
	if strings.TrimSpace(action) == "" {
		return ErrInvalidAction
	}

	subject := fmt.Sprintf("user:%s", strings.ToLower(username))
	roleName := fmt.Sprintf("role:%s", authdomain.ParseRole(string(actor.Role)))
	if err := s.ensureGrouping(subject, roleName); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Warn("authorization denied",
			zap.String("subject", subject),
			zap.String("role", roleName),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

// ensureGrouping links the subject to its current role, replacing stale
// links if the account was promoted or demoted.
func (s *ServiceImpl) ensureGrouping(subject, roleName string) error {
	has, err := s.enforcer.HasGroupingPolicy(subject, roleName)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if _, err := s.enforcer.RemoveGroupingPolicy(rule); err != nil {
			return err
		}
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName)
	return err
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:user", ObjectQuotation, ActionView},
		{"role:user", ObjectQuotation, ActionCreate},
		{"role:user", ObjectQuotation, ActionUpdate},
		{"role:user", ObjectAgentRegistration, ActionView},
		{"role:user", ObjectAgentRegistration, ActionCreate},
		{"role:user", ObjectAgentRegistration, ActionUpdate},
		{"role:user", ObjectPricing, ActionCalculate},

		{"role:manager", ObjectQuotation, ActionDecide},
		{"role:manager", ObjectQuotation, ActionDelete},
		{"role:manager", ObjectAgentRegistration, ActionDelete},
		{"role:manager", ObjectUser, ActionView},

		{"role:admin", ObjectUser, ActionCreate},
		{"role:admin", ObjectUser, ActionUpdate},
		{"role:admin", ObjectUser, ActionDelete},
	}
	for _, p := range policies {
		has, err := enforcer.HasPolicy(p[0], p[1], p[2])
		if err != nil {
			return err
		}
		if !has {
			if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
				return err
			}
		}
	}

	groupings := [][]string{
		{"role:manager", "role:user"},
		{"role:admin", "role:manager"},
	}
	for _, g := range groupings {
		has, err := enforcer.HasGroupingPolicy(g[0], g[1])
		if err != nil {
			return err
		}
		if !has {
			if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
				return err
			}
		}
	}
	return nil
}
