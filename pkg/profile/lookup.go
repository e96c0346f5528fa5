package profile

import "context"

// UserLookup resolves a login to a user. Any error means the user could not
// be found for this load.
type UserLookup interface {
	LookupUser(ctx context.Context, login string) (User, error)
}

// LookupFunc adapts a function to UserLookup.
type LookupFunc func(ctx context.Context, login string) (User, error)

// LookupUser calls f(ctx, login).
func (f LookupFunc) LookupUser(ctx context.Context, login string) (User, error) {
	return f(ctx, login)
}
