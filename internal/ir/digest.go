package ir

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/cockroachdb/errors"
)

// DomainResult separates result digests from any other SHA-256 use.
// Bump the version if the canonical projection of results changes.
const DomainResult = "qsamples/result/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the hex SHA-256 of the canonical encoding of v. Equal
// results digest equally across runs, backends and machines.
func Digest(v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", errors.Wrap(err, "digest")
	}
	return hashWithDomain(DomainResult, canonical), nil
}

// MustDigest is Digest for values known to be encodable.
func MustDigest(v Value) string {
	d, err := Digest(v)
	if err != nil {
		panic(err)
	}
	return d
}
