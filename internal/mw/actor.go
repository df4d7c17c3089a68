package mw

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// Headers set by the terminal's login collaborator.
const (
	HeaderStaffID   = "X-Staff-ID"
	HeaderStaffRole = "X-Staff-Role"
)

// Role is a staff role.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleWaiter  Role = "waiter"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleWaiter
}

// Actor is the signed-in staff member making a request.
type Actor struct {
	ID   int
	Role Role
}

const actorKey = "floor.actor"

// Identify reads the staff headers into the request context. Requests
// without them pass through anonymously; malformed headers are rejected.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID, rawRole := c.GetHeader(HeaderStaffID), c.GetHeader(HeaderStaffRole)
		if rawID == "" && rawRole == "" {
			c.Next()
			return
		}

		id, err := strconv.Atoi(rawID)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + HeaderStaffID + " header"})
			return
		}
		role := Role(rawRole)
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + HeaderStaffRole + " header"})
			return
		}
		c.Set(actorKey, Actor{ID: id, Role: role})
		c.Next()
	}
}

// ActorFrom returns the actor stored by Identify.
func ActorFrom(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	return a, ok
}

// RequireRole lets the request through only for a signed-in actor holding
// one of roles.
func RequireRole(roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		if !lo.Contains(roles, a.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role " + string(a.Role) + " may not do this"})
			return
		}
		c.Next()
	}
}
