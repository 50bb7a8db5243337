package rbac

import (
	"context"
	"strings"
)

type Checker struct {
	RolePermissions map[string][]string
}

func NewChecker(rp map[string][]string) *Checker {
	if rp == nil {
		rp = RolePermissions
	}
	return &Checker{RolePermissions: rp}
}

// Has reports whether role grants perm. A grant of "*" covers everything;
// "bank:*" covers every bank permission.
func (c *Checker) Has(role, perm string) bool {
	for _, grant := range c.RolePermissions[role] {
		prefix, wildcard := strings.CutSuffix(grant, "*")
		if grant == perm || (wildcard && strings.HasPrefix(perm, prefix)) {
			return true
		}
	}
	return false
}

type roleKey struct{}

// WithRole attaches the caller's role for Require to check.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns "" for unauthenticated requests.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
