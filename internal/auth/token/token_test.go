package token

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	signed, err := issuer.Issue(snowflake.ID(42))
	require.NoError(t, err)

	id, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(42), id)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewIssuer("test-secret", time.Hour).Issue(snowflake.ID(42))
	require.NoError(t, err)

	_, err = NewIssuer("other-secret", time.Hour).Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	signed, err := issuer.Issue(snowflake.ID(42))
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not.a.token")
	assert.Error(t, err)
}
