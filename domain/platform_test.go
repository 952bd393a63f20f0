package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	for _, p := range AllPlatforms() {
		parsed, err := ParsePlatform(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	_, err := ParsePlatform("myspace")
	require.ErrorIs(t, err, ErrInvalidPlatform)
	_, err = ParsePlatform("")
	require.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestState_Normalize(t *testing.T) {
	st := &State{UserId: "u1"}
	st.Normalize()
	assert.Equal(t, PlatformHub, st.CurrentPlatform)
	for _, p := range AllPlatforms() {
		assert.NotNil(t, st.Platforms[p])
		assert.Equal(t, DefaultPreferences(), st.Preferences[p])
	}
}

func TestAccessGrant_Active(t *testing.T) {
	now := int64(1000)
	assert.True(t, AccessGrant{}.Active(now))
	assert.True(t, AccessGrant{ExpiresAt: 1001}.Active(now))
	assert.False(t, AccessGrant{ExpiresAt: 1000}.Active(now))
	assert.False(t, AccessGrant{ExpiresAt: 999}.Active(now))
}

func TestNotification_TargetsAny(t *testing.T) {
	n := Notification{Targets: []Platform{PlatformHub, PlatformAscenders}}
	assert.True(t, n.TargetsAny([]Platform{PlatformAscenders}))
	assert.True(t, n.TargetsAny([]Platform{PlatformNeothinkers, PlatformHub}))
	assert.False(t, n.TargetsAny([]Platform{PlatformNeothinkers}))
	assert.False(t, n.TargetsAny(nil))
}
