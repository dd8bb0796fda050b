// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package origin

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 digest of a signing certificate's
// DER encoding. Fingerprints stand in for the certificates themselves
// in Origin equality: two certificates with the same fingerprint are
// the same signer.
type Fingerprint [32]byte

// certificateDomainKey is the 32-byte key for BLAKE3 keyed hashing of
// certificates. Domain separation ensures certificate fingerprints can
// never collide with hashes computed over the same bytes in another
// context. The byte values are the ASCII encoding of the domain name,
// zero-padded to 32 bytes, so the key is inspectable in hex dumps.
var certificateDomainKey = [32]byte{
	'w', 'a', 'r', 'd', 'e', 'n', '.', 'o', 'r', 'i', 'g', 'i', 'n', '.',
	'c', 'e', 'r', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// FingerprintCertificate computes the certificate-domain BLAKE3 keyed
// hash of a certificate's DER bytes.
func FingerprintCertificate(der []byte) Fingerprint {
	hasher, err := blake3.NewKeyed(certificateDomainKey[:])
	if err != nil {
		// NewKeyed fails only for a key that is not 32 bytes; the
		// domain key is a fixed 32-byte constant.
		panic("origin: BLAKE3 keyed hasher initialization failed: " + err.Error())
	}
	hasher.Write(der)
	var fp Fingerprint
	hasher.Digest().Read(fp[:])
	return fp
}

// ParseFingerprint parses a 64-character hex string into a Fingerprint.
func ParseFingerprint(s string) (Fingerprint, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(raw) != len(Fingerprint{}) {
		return Fingerprint{}, fmt.Errorf("fingerprint is %d bytes, want %d", len(raw), len(Fingerprint{}))
	}
	var fp Fingerprint
	copy(fp[:], raw)
	return fp, nil
}

// String returns the lowercase hex encoding.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Less orders fingerprints bytewise, for canonical sorting.
func (f Fingerprint) Less(other Fingerprint) bool {
	return bytes.Compare(f[:], other[:]) < 0
}
