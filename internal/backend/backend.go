// Package backend simulates the remote service the session and file stores
// talk to. There is no network: each call waits a fixed latency and answers
// from a hard-coded table.
package backend

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcloud/internal/common"
	"github.com/dmitrijs2005/gophcloud/internal/models"
	"github.com/google/uuid"
)

// Demo credential accepted by Login.
const (
	DemoEmail  = "demo@example.com"
	DemoSecret = "password"
	DemoID     = "1"
	DemoName   = "Demo User"
)

var ErrUnauthorized = errors.New("invalid email or password")

// Backend defines the remote operations used by the stores.
//
// All methods must honor context cancellation.
type Backend interface {
	Login(ctx context.Context, email string, secret []byte) (models.Identity, error)
	Register(ctx context.Context, name, email string, secret []byte) (models.Identity, error)
	Upload(ctx context.Context, file models.RawFile) error
}

// Mock is the in-process Backend.
type Mock struct {
	authLatency   time.Duration
	uploadLatency time.Duration
	newID         func() string
}

func NewMock(authLatency, uploadLatency time.Duration) *Mock {
	return &Mock{
		authLatency:   authLatency,
		uploadLatency: uploadLatency,
		newID:         func() string { return uuid.NewString() },
	}
}

// Login succeeds only for the demo credential pair.
func (m *Mock) Login(ctx context.Context, email string, secret []byte) (models.Identity, error) {
	if err := common.Sleep(ctx, m.authLatency); err != nil {
		return models.Identity{}, fmt.Errorf("login aborted: %w", err)
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(DemoEmail))
	secretOK := subtle.ConstantTimeCompare(secret, []byte(DemoSecret))
	if emailOK&secretOK == 0 {
		return models.Identity{}, ErrUnauthorized
	}

	return models.Identity{ID: DemoID, Name: DemoName, Email: email}, nil
}

// Register always succeeds and returns an identity with a fresh id.
func (m *Mock) Register(ctx context.Context, name, email string, _ []byte) (models.Identity, error) {
	if err := common.Sleep(ctx, m.authLatency); err != nil {
		return models.Identity{}, fmt.Errorf("register aborted: %w", err)
	}
	return models.Identity{ID: m.newID(), Name: name, Email: email}, nil
}

// Upload waits the upload latency. The content stays on this side.
func (m *Mock) Upload(ctx context.Context, _ models.RawFile) error {
	if err := common.Sleep(ctx, m.uploadLatency); err != nil {
		return fmt.Errorf("upload aborted: %w", err)
	}
	return nil
}
