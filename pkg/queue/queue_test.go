package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobRoundTripsPayload(t *testing.T) {
	job, err := NewJob(JobTypePasswordReset, EmailPayload{RecipientEmail: "a@x.com", Token: "abc"})
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, JobTypePasswordReset, job.Type)
	assert.Zero(t, job.Attempt)

	var p EmailPayload
	require.NoError(t, json.Unmarshal(job.Payload, &p))
	assert.Equal(t, "a@x.com", p.RecipientEmail)
	assert.Equal(t, "abc", p.Token)
}

func TestNewJobIDsUnique(t *testing.T) {
	a, err := NewJob(JobTypeLoiSubmitted, EmailPayload{})
	require.NoError(t, err)
	b, err := NewJob(JobTypeLoiSubmitted, EmailPayload{})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
