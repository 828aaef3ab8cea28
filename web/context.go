package web

import (
	"context"

	"github.com/artpar/admingate/ports"
)

type ctxKey string

const adminKey ctxKey = "admin"

// withAdmin adds the authenticated admin to the context.
func withAdmin(ctx context.Context, admin ports.CurrentAdmin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

// adminFrom retrieves the authenticated admin from context.
// Returns a zero CurrentAdmin for anonymous requests.
func adminFrom(ctx context.Context) ports.CurrentAdmin {
	admin, ok := ctx.Value(adminKey).(ports.CurrentAdmin)
	if !ok {
		return ports.CurrentAdmin{}
	}
	return admin
}
