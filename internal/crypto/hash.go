package crypto

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint хеширует части с помощью BLAKE2b-256 и возвращает hex-строку.
// Каждая часть предваряется своей длиной, поэтому ("ab", "c") и ("a", "bc")
// дают разные отпечатки.
func Fingerprint(parts ...[]byte) string {
	// New256 с nil ключом не возвращает ошибку
	h, _ := blake2b.New256(nil)

	var size [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(p)))
		h.Write(size[:])
		h.Write(p)
	}

	return hex.EncodeToString(h.Sum(nil))
}
