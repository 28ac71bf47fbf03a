// Package signedurl builds and validates tamper-evident, time-limited email
// verification links. A link carries the user ID, a fingerprint of the email
// it was issued for, an expiry timestamp and an HMAC-SHA256 signature over
// the canonical URL. Nothing is stored server-side; possession of a valid
// link is the capability.
package signedurl

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMalformed indicates a required link parameter is missing or garbled.
	ErrMalformed = errors.New("malformed verification link")
	// ErrExpired indicates the link's expiry timestamp is in the past.
	ErrExpired = errors.New("verification link expired")
	// ErrFingerprintMismatch indicates the link was issued for a different
	// email address than the one currently on record.
	ErrFingerprintMismatch = errors.New("verification link fingerprint mismatch")
	// ErrBadSignature indicates the HMAC signature does not match.
	ErrBadSignature = errors.New("invalid verification link signature")
)

// SignedLink is the result of issuing a link: the canonical components plus
// the fully assembled URL.
type SignedLink struct {
	UserID      string
	Fingerprint string
	Expires     int64
	Signature   string
	URL         string
}

// Codec issues and verifies signed verification URLs. It is a pure function
// of its inputs, the injected secret and the clock, which makes it trivially
// testable with fixed secrets and times.
type Codec struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Codec. baseURL is the public verification endpoint without a
// trailing slash, e.g. "https://api.example.com/email/verify". ttl defaults
// to 60 minutes when non-positive.
func New(secret string, baseURL string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &Codec{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock overrides the codec's clock. Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// Now exposes the codec's clock so callers that record verification or
// approval timestamps stay on the same (possibly test-injected) time source.
func (c *Codec) Now() time.Time {
	return c.now()
}

// Issue composes a signed, time-limited verification URL for the given user
// and email fingerprint. It has no side effects.
func (c *Codec) Issue(userID, fingerprint string) SignedLink {
	expires := c.now().Add(c.ttl).Unix()
	unsigned := c.canonicalURL(userID, fingerprint, expires)
	sig := c.sign(unsigned)
	return SignedLink{
		UserID:      userID,
		Fingerprint: fingerprint,
		Expires:     expires,
		Signature:   sig,
		URL:         fmt.Sprintf("%s&signature=%s", unsigned, sig),
	}
}

// Verify checks a supplied link against the current state of the world.
// The checks run in a fixed order and the first failure wins:
//
//  1. all parameters present (ErrMalformed)
//  2. not expired (ErrExpired)
//  3. fingerprint matches the user's current email (ErrFingerprintMismatch)
//  4. HMAC signature matches the canonical URL (ErrBadSignature)
//
// Both string comparisons use constant-time equality.
func (c *Codec) Verify(userID, fingerprint string, expires int64, signature, currentFingerprint string) error {
	if userID == "" || fingerprint == "" || signature == "" || expires <= 0 {
		return ErrMalformed
	}
	if c.now().Unix() > expires {
		return ErrExpired
	}
	// Guards against replaying an old link after the account email changed.
	if !constantTimeEqual(fingerprint, currentFingerprint) {
		return ErrFingerprintMismatch
	}
	expected := c.sign(c.canonicalURL(userID, fingerprint, expires))
	if !constantTimeEqual(signature, expected) {
		return ErrBadSignature
	}
	return nil
}

// canonicalURL is the exact string covered by the signature. The signature
// query parameter itself is excluded.
func (c *Codec) canonicalURL(userID, fingerprint string, expires int64) string {
	return fmt.Sprintf("%s/%s/%s?expires=%d", c.baseURL, userID, fingerprint, expires)
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func constantTimeEqual(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}

// EmailFingerprint returns the canonical fingerprint of an email address: the
// hex SHA-1 digest of the trimmed, lowercased address. It is embedded in
// verification links so a link stays bound to the email it was issued for.
func EmailFingerprint(email string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
