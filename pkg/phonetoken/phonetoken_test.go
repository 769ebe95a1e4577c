package phonetoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	g := New(DefaultConfig())
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tok, err := g.Issue("+998901234567", now)
	require.NoError(t, err)
	assert.Len(t, tok.Code, 6)
	assert.Equal(t, now.Add(3*time.Minute), tok.ExpiresAt)

	ok, err := g.Verify(tok.Code, tok.Secret, tok.ExpiresAt, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	g := New(DefaultConfig())
	now := time.Now()

	tok, err := g.Issue("+998901234567", now)
	require.NoError(t, err)

	wrong := "000000"
	if tok.Code == wrong {
		wrong = "111111"
	}
	ok, err := g.Verify(wrong, tok.Secret, tok.ExpiresAt, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyAfterExpiry(t *testing.T) {
	g := New(DefaultConfig())
	now := time.Now()

	tok, err := g.Issue("+998901234567", now)
	require.NoError(t, err)

	ok, err := g.Verify(tok.Code, tok.Secret, tok.ExpiresAt, now.Add(4*time.Minute))
	assert.ErrorIs(t, err, ErrExpired)
	assert.False(t, ok)
}
