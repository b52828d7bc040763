package server

import (
	"context"

	"github.com/gng-scout/athlete-directory-service/internal/refresher"
)

// Refresher defines the refresh loop behavior needed by the server.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() refresher.Status
}
