// Package initdata verifies Telegram Mini App launch payloads.
//
// A payload is an ampersand-separated, percent-encoded key=value string that
// Telegram signs with HMAC-SHA256 using a key derived from the bot token. The
// auxiliary Ed25519 "signature" field is not part of this scheme and is
// excluded from the check string.
package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
)

var (
	ErrEmptyPayload      = errors.New("empty init data payload")
	ErrMissingSignature  = errors.New("init data has no hash field")
	ErrSignatureMismatch = errors.New("init data hash mismatch")
	ErrMalformedUser     = errors.New("init data user is missing or malformed")
)

// Identity is the verified Telegram user embedded in init data. It is only
// ever produced from a payload whose signature checked out.
type Identity struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	StartParam string `json:"-"`
}

type pair struct {
	key   string
	value string
}

// Verify checks that raw was signed by Telegram for the bot identified by
// botToken and extracts the embedded user. It is a pure function and never
// logs its inputs.
func Verify(raw, botToken string) (*Identity, error) {
	if raw == "" {
		return nil, ErrEmptyPayload
	}

	pairs, expected, err := splitPayload(raw)
	if err != nil {
		return nil, err
	}
	if expected == "" {
		return nil, ErrMissingSignature
	}

	computed := computeHash(checkString(pairs), botToken)
	if !hmac.Equal([]byte(computed), []byte(expected)) {
		return nil, ErrSignatureMismatch
	}

	return identityFrom(pairs)
}

// splitPayload breaks the raw query into decoded pairs, pulling out the hash
// field and dropping the auxiliary signature field.
func splitPayload(raw string) ([]pair, string, error) {
	var pairs []pair
	var hash string

	for _, segment := range strings.Split(raw, "&") {
		key, value, _ := strings.Cut(segment, "=")
		// Values are percent-encoded; a literal "+" stays a "+".
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		switch key {
		case "hash":
			hash = value
		case "signature":
			// Ed25519 companion signature, not covered by the HMAC scheme.
		default:
			pairs = append(pairs, pair{key: key, value: value})
		}
	}

	return pairs, hash, nil
}

// checkString joins the decoded pairs, sorted byte-wise by key, with newlines.
func checkString(pairs []pair) string {
	sorted := make([]pair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })

	parts := make([]string, 0, len(sorted))
	for _, p := range sorted {
		parts = append(parts, p.key+"="+p.value)
	}
	return strings.Join(parts, "\n")
}

// computeHash derives the signing key as HMAC-SHA256("WebAppData", botToken)
// and returns the lowercase hex HMAC of the check string under that key.
func computeHash(check, botToken string) string {
	keyMAC := hmac.New(sha256.New, []byte("WebAppData"))
	keyMAC.Write([]byte(botToken))
	derived := keyMAC.Sum(nil)

	mac := hmac.New(sha256.New, derived)
	mac.Write([]byte(check))
	return hex.EncodeToString(mac.Sum(nil))
}

func identityFrom(pairs []pair) (*Identity, error) {
	var userRaw, startParam string
	for _, p := range pairs {
		switch p.key {
		case "user":
			userRaw = p.value
		case "start_param":
			startParam = p.value
		}
	}
	if userRaw == "" {
		return nil, ErrMalformedUser
	}

	var identity Identity
	if err := json.Unmarshal([]byte(userRaw), &identity); err != nil || identity.ID == 0 {
		return nil, ErrMalformedUser
	}
	identity.StartParam = startParam

	return &identity, nil
}

// Sign builds a correctly signed init data string from the given fields.
// Field order in the output follows sorted keys; verification does not depend
// on it.
func Sign(fields map[string]string, botToken string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]pair, 0, len(fields))
	encoded := make([]string, 0, len(fields)+1)
	for _, k := range keys {
		if k == "signature" {
			continue
		}
		pairs = append(pairs, pair{key: k, value: fields[k]})
		encoded = append(encoded, k+"="+escape(fields[k]))
	}

	hash := computeHash(checkString(pairs), botToken)
	encoded = append(encoded, "hash="+hash)

	return strings.Join(encoded, "&")
}

// escape percent-encodes like encodeURIComponent: spaces become %20, not "+".
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
