package signedurl

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New("app-secret", "https://api.test/email/verify", time.Hour).WithClock(fixedClock(now))

	fp := EmailFingerprint("a@x.com")
	link := c.Issue("user-1", fp)

	require.Equal(t, now.Add(time.Hour).Unix(), link.Expires)
	assert.Equal(t, fmt.Sprintf("https://api.test/email/verify/user-1/%s?expires=%d&signature=%s", fp, link.Expires, link.Signature), link.URL)

	err := c.Verify(link.UserID, link.Fingerprint, link.Expires, link.Signature, fp)
	require.NoError(t, err)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	c := New("secret", "https://api.test/email/verify", time.Hour)
	fp := EmailFingerprint("a@x.com")
	link := c.Issue("user-1", fp)

	tests := []struct {
		name        string
		userID      string
		fingerprint string
		expires     int64
		signature   string
	}{
		{"missing user id", "", link.Fingerprint, link.Expires, link.Signature},
		{"missing fingerprint", link.UserID, "", link.Expires, link.Signature},
		{"missing signature", link.UserID, link.Fingerprint, link.Expires, ""},
		{"zero expires", link.UserID, link.Fingerprint, 0, link.Signature},
		{"negative expires", link.UserID, link.Fingerprint, -5, link.Signature},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := c.Verify(tc.userID, tc.fingerprint, tc.expires, tc.signature, fp)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New("secret", "https://api.test/email/verify", time.Hour).WithClock(fixedClock(now))
	fp := EmailFingerprint("a@x.com")
	link := c.Issue("user-1", fp)

	// A link with expires in the past fails regardless of signature validity.
	late := c.WithClock(fixedClock(now.Add(time.Hour + time.Second)))
	err := late.Verify(link.UserID, link.Fingerprint, link.Expires, link.Signature, fp)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_FingerprintMismatch(t *testing.T) {
	t.Parallel()

	c := New("secret", "https://api.test/email/verify", time.Hour)
	oldFP := EmailFingerprint("old@x.com")
	link := c.Issue("user-1", oldFP)

	// Email changed after the link was issued.
	currentFP := EmailFingerprint("new@x.com")
	err := c.Verify(link.UserID, link.Fingerprint, link.Expires, link.Signature, currentFP)
	assert.ErrorIs(t, err, ErrFingerprintMismatch)
}

func TestVerify_TamperDetection(t *testing.T) {
	t.Parallel()

	c := New("secret", "https://api.test/email/verify", time.Hour)
	fp := EmailFingerprint("a@x.com")
	link := c.Issue("user-1", fp)

	t.Run("tampered signature", func(t *testing.T) {
		flipped := flipHexDigit(link.Signature)
		err := c.Verify(link.UserID, link.Fingerprint, link.Expires, flipped, fp)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("tampered user id", func(t *testing.T) {
		err := c.Verify("user-2", link.Fingerprint, link.Expires, link.Signature, fp)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("tampered expires", func(t *testing.T) {
		err := c.Verify(link.UserID, link.Fingerprint, link.Expires+3600, link.Signature, fp)
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := New("other-secret", "https://api.test/email/verify", time.Hour)
		err := other.Verify(link.UserID, link.Fingerprint, link.Expires, link.Signature, fp)
		assert.ErrorIs(t, err, ErrBadSignature)
	})
}

func TestEmailFingerprint_Canonicalization(t *testing.T) {
	t.Parallel()

	base := EmailFingerprint("a@x.com")
	assert.Len(t, base, 40)
	assert.Equal(t, base, EmailFingerprint("  A@X.COM  "))
	assert.NotEqual(t, base, EmailFingerprint("b@x.com"))
}

// flipHexDigit changes the first hex digit so the string stays well-formed
// but no longer matches.
func flipHexDigit(s string) string {
	if strings.HasPrefix(s, "0") {
		return "1" + s[1:]
	}
	return "0" + s[1:]
}
