package credential

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MatchesOnlyOriginalPassword(t *testing.T) {
	h, err := New("secret123")
	require.NoError(t, err)

	assert.True(t, h.IsSet())
	assert.True(t, h.Matches("secret123"))

	for _, wrong := range []string{"", "secret12", "secret1234", "SECRET123", " secret123"} {
		assert.False(t, h.Matches(wrong), "wrong password %q matched", wrong)
	}
}

func TestNew_SaltsEachHash(t *testing.T) {
	a, err := New("secret123")
	require.NoError(t, err)
	b, err := New("secret123")
	require.NoError(t, err)

	va, _ := a.Value()
	vb, _ := b.Value()
	assert.NotEqual(t, va, vb)
}

func TestNew_RejectsEmptyAndOverlongPasswords(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = New(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHash_ZeroValueMatchesNothing(t *testing.T) {
	var h Hash
	assert.False(t, h.IsSet())
	assert.False(t, h.Matches(""))
	assert.False(t, h.Matches("anything"))

	_, err := h.Value()
	assert.ErrorIs(t, err, ErrUnset)
}

func TestHash_ScanRoundTrip(t *testing.T) {
	h, err := New("secret123")
	require.NoError(t, err)
	stored, err := h.Value()
	require.NoError(t, err)

	var fromString, fromBytes Hash
	require.NoError(t, fromString.Scan(stored))
	require.NoError(t, fromBytes.Scan([]byte(stored.(string))))

	assert.True(t, fromString.Matches("secret123"))
	assert.True(t, fromBytes.Matches("secret123"))
	assert.Error(t, fromString.Scan(42))
}

func TestHash_NeverRendersDigestOrPlaintext(t *testing.T) {
	h, err := New("secret123")
	require.NoError(t, err)
	stored, _ := h.Value()
	digest := stored.(string)

	_, err = json.Marshal(h)
	assert.ErrorIs(t, err, ErrNotReadable)

	for _, out := range []string{
		fmt.Sprint(h),
		fmt.Sprintf("%v %+v %#v %s", h, h, h, h),
	} {
		assert.NotContains(t, out, digest)
		assert.NotContains(t, out, "secret123")
	}

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("user", "hash", h)
	assert.NotContains(t, buf.String(), digest)
	assert.Contains(t, buf.String(), redacted)
}
