package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/prepa/internal/client/client"
	"github.com/dmitrijs2005/prepa/internal/client/services"
)

var errCancelled = errors.New("cancelled")

// describeError turns an error into a message for the user.
func describeError(err error) string {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		msgs := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			msgs = append(msgs, f.Field+" "+f.Message)
		}
		return strings.Join(msgs, "; ")
	case errors.Is(err, errCancelled):
		return "cancelled"
	case errors.Is(err, client.ErrNoActiveAccount):
		return "invalid username or password"
	case errors.Is(err, client.ErrUsernameTaken):
		return "this username is already taken"
	case errors.Is(err, client.ErrEmailTaken):
		return "this e-mail address is already in use"
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized, please log in again"
	case errors.Is(err, client.ErrForbidden):
		return "you are not allowed to do this"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	case errors.Is(err, context.DeadlineExceeded):
		return "the server took too long to answer"
	case client.IsUnavailable(err):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}
