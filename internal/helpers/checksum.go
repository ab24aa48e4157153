package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// ShortChecksumLen is the number of hex characters used to tag document sources.
const ShortChecksumLen = 8

// SHA256 returns the hex encoded SHA-256 digest of the input.
func SHA256(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

// ShortChecksum returns the first ShortChecksumLen characters of the SHA-256 digest.
func ShortChecksum(input []byte) string {
	return SHA256(input)[:ShortChecksumLen]
}

// SHA256Reader digests everything readable from reader.
func SHA256Reader(reader io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, reader); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
