package services

import (
	"context"
	"time"
)

// TokenSvc issues bearer tokens accepted by the API's auth middleware.
// Identity management lives outside the ledger; this only signs a subject.
type TokenSvc interface {
	GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error)
}
