package backend

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcloud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_LoginDemoPair(t *testing.T) {
	m := NewMock(0, 0)

	id, err := m.Login(context.Background(), DemoEmail, []byte(DemoSecret))
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: DemoID, Name: DemoName, Email: DemoEmail}, id)
}

func TestMock_LoginRejectsOthers(t *testing.T) {
	m := NewMock(0, 0)
	cases := []struct{ email, secret string }{
		{DemoEmail, "passw0rd"},
		{"demo@example.org", DemoSecret},
		{"", ""},
		{DemoEmail, ""},
	}
	for _, c := range cases {
		_, err := m.Login(context.Background(), c.email, []byte(c.secret))
		assert.ErrorIs(t, err, ErrUnauthorized, "%s/%s", c.email, c.secret)
	}
}

func TestMock_RegisterFreshIDs(t *testing.T) {
	m := NewMock(0, 0)
	ctx := context.Background()

	a, err := m.Register(ctx, "Ann", "ann@example.com", []byte("secret1"))
	require.NoError(t, err)
	b, err := m.Register(ctx, "Ann", "ann@example.com", []byte("secret1"))
	require.NoError(t, err)

	assert.Equal(t, "Ann", a.Name)
	assert.Equal(t, "ann@example.com", a.Email)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMock_LatencyHonoursContext(t *testing.T) {
	m := NewMock(time.Hour, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Login(ctx, DemoEmail, []byte(DemoSecret))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = m.Register(ctx, "n", "e", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = m.Upload(ctx, models.RawFile{Name: "a.jpg"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMock_UploadWaits(t *testing.T) {
	m := NewMock(0, 15*time.Millisecond)
	start := time.Now()
	require.NoError(t, m.Upload(context.Background(), models.RawFile{}))
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
