package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient records the config its factory received.
type stubClient struct {
	name string
	cfg  Config
}

func (s *stubClient) Complete(context.Context, Request) (*Response, error) {
	return &Response{Role: RoleAssistant, Content: "stub"}, nil
}

func (s *stubClient) Provider() string { return s.name }

// registerStub registers a stub transport for the duration of the test.
func registerStub(t *testing.T, name string) {
	t.Helper()
	Register(name, func(cfg Config) (Client, error) {
		return &stubClient{name: name, cfg: cfg}, nil
	})
	t.Cleanup(func() { unregister(name) })
}

func TestRegister(t *testing.T) {
	registerStub(t, "stub-register")

	assert.True(t, IsRegistered("stub-register"))
	assert.Contains(t, Available(), "stub-register")
	assert.Panics(t, func() {
		Register("stub-register", func(Config) (Client, error) { return nil, nil })
	})
}

func TestAvailable_Sorted(t *testing.T) {
	registerStub(t, "stub-b")
	registerStub(t, "stub-a")

	names := Available()
	assert.IsNonDecreasing(t, names)
}

func TestNew(t *testing.T) {
	registerStub(t, "stub-new")

	client, err := New("stub-new", Config{Deployment: "chat"})
	require.NoError(t, err)
	assert.Equal(t, "stub-new", client.Provider())
	assert.Equal(t, "chat", client.(*stubClient).cfg.Deployment)
}

func TestNew_UnknownProvider(t *testing.T) {
	registerStub(t, "stub-known")

	_, err := New("missing", Config{})

	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.ErrorContains(t, err, "stub-known")
}

func TestOpen(t *testing.T) {
	registerStub(t, "stub-open")

	client, err := Open(DefaultConfig().WithProvider("stub-open").WithDeployment("chat"))
	require.NoError(t, err)
	assert.Equal(t, "chat", client.(*stubClient).cfg.Deployment)

	_, err = Open(Config{Provider: "stub-open"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = Open(DefaultConfig().WithProvider("nope"))
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
