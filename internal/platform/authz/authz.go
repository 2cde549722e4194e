package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Enforcer answers "may role X use permission Y" where permissions are
// written as "<resource>.<action>", e.g. "leaves.approve_hr".
type Enforcer struct {
	enforcer *casbin.Enforcer
}

func New(rolePermissions map[string][]string) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(rolePermissions))
	for role := range rolePermissions {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		for _, perm := range rolePermissions[role] {
			obj, act, err := split(perm)
			if err != nil {
				return nil, err
			}
			if _, err := e.AddPolicy(role, obj, act); err != nil {
				return nil, fmt.Errorf("add policy %s %s: %w", role, perm, err)
			}
		}
	}
	return &Enforcer{enforcer: e}, nil
}

func (e *Enforcer) Allowed(role, permission string) (bool, error) {
	if role == "" {
		return false, nil
	}
	obj, act, err := split(permission)
	if err != nil {
		return false, err
	}
	return e.enforcer.Enforce(role, obj, act)
}

func split(permission string) (string, string, error) {
	idx := strings.LastIndex(permission, ".")
	if idx <= 0 || idx == len(permission)-1 {
		return "", "", fmt.Errorf("malformed permission %q", permission)
	}
	return permission[:idx], permission[idx+1:], nil
}
