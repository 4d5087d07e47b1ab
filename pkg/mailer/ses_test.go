package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSESDisabledWithoutFromAddress(t *testing.T) {
	s, err := NewSES(context.Background(), SESConfig{Region: "eu-west-2"}, nil)
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	err = s.Send(context.Background(), Message{To: "a@x.com", Subject: "hello"})
	assert.NoError(t, err)
}
