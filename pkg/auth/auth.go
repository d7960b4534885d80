package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	XUserIDHeader   = "X-User-ID"
	XUserRoleHeader = "X-User-Role"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// Claims are issued by the identity service; only verification happens here.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

func SetAuthContext(ctx context.Context, userID uuid.UUID, role Role) context.Context {
	return context.WithValue(ctx, ctxKey{}, Principal{UserID: userID, Role: role})
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}
