package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSignerRoundTrip(t *testing.T) {
	signer := NewCookieSigner("secret", time.Hour)
	value, err := signer.Issue("client-42")
	require.NoError(t, err)

	id, err := signer.Parse(value)
	require.NoError(t, err)
	assert.Equal(t, "client-42", id)
}

func TestCookieSignerRejectsForeignAndExpired(t *testing.T) {
	signer := NewCookieSigner("secret", time.Hour)
	other := NewCookieSigner("other", time.Hour)

	value, err := other.Issue("client-42")
	require.NoError(t, err)
	_, err = signer.Parse(value)
	assert.Error(t, err)

	_, err = signer.Parse("garbage")
	assert.Error(t, err)

	issued, err := signer.Issue("client-42")
	require.NoError(t, err)
	signer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = signer.Parse(issued)
	assert.Error(t, err)
}
