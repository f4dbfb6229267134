package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// The policy set is closed: roles come from the employee is_admin flag, not
// from configurable policy tables.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var policies = [][]string{
	{RoleAdmin, "employee", "create"},
	{RoleAdmin, "employee", "read"},
	{RoleAdmin, "employee", "options"},
	{RoleAdmin, "employee", "update"},
	{RoleAdmin, "employee", "deactivate"},
	{RoleAdmin, "employee", "adjust_balance"},
	{RoleAdmin, "leave", "create"},
	{RoleAdmin, "leave", "read"},
	{RoleAdmin, "leave", "approve"},

	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "read"},
}

// NewEnforcer builds an in-memory casbin enforcer preloaded with the static
// role policies.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
