// Package password derives and verifies salted PBKDF2-HMAC-SHA256 password
// credentials.
//
// A Credential holds the derived key and its salt, both base64 encoded:
//
//	h := password.NewPBKDF2Hasher(password.Config{})
//	cred, err := h.Hash("pw123", "")       // fresh 16-byte salt
//	err = h.Verify("pw123", cred)          // nil on match
//
// Derivation is deliberately slow (100000 iterations).
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

var (
	// ErrMismatch is returned by Verify when the password does not match.
	ErrMismatch = errors.New("password: mismatch")

	// ErrInvalidSalt is returned when a supplied salt is not valid base64.
	ErrInvalidSalt = errors.New("password: invalid salt encoding")

	// ErrInvalidCredential is returned when a stored hash cannot be decoded.
	ErrInvalidCredential = errors.New("password: invalid stored credential")
)

// Credential is the stored form of a password: derived key and salt, both
// base64 (standard alphabet, padded).
type Credential struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

// Hasher derives and checks password credentials.
type Hasher interface {
	// Hash derives a credential. An empty salt means a fresh random salt;
	// otherwise salt is the base64 form returned by an earlier Hash.
	Hash(password, salt string) (Credential, error)

	// Verify returns nil if password matches cred, ErrMismatch otherwise.
	Verify(password string, cred Credential) error
}

// PBKDF2Hasher implements Hasher with PBKDF2-HMAC-SHA256.
type PBKDF2Hasher struct {
	iterations int
	keyLength  int
	saltLength int
}

var _ Hasher = (*PBKDF2Hasher)(nil)

// NewPBKDF2Hasher creates a hasher from cfg, applying defaults first.
func NewPBKDF2Hasher(cfg Config) *PBKDF2Hasher {
	cfg.ApplyDefaults()
	return &PBKDF2Hasher{
		iterations: cfg.Iterations,
		keyLength:  cfg.KeyLength,
		saltLength: cfg.SaltLength,
	}
}

// Hash derives a credential for password. Same (password, salt) always yields
// the same Hash.
func (h *PBKDF2Hasher) Hash(password, salt string) (Credential, error) {
	var raw []byte
	if salt == "" {
		raw = make([]byte, h.saltLength)
		if _, err := rand.Read(raw); err != nil {
			return Credential{}, fmt.Errorf("password: generate salt: %w", err)
		}
	} else {
		b, err := base64.StdEncoding.DecodeString(salt)
		if err != nil {
			return Credential{}, ErrInvalidSalt
		}
		raw = b
	}

	key := h.derive(password, raw)
	return Credential{
		Hash: base64.StdEncoding.EncodeToString(key),
		Salt: base64.StdEncoding.EncodeToString(raw),
	}, nil
}

// Verify re-derives the key with the stored salt and compares it in constant time.
func (h *PBKDF2Hasher) Verify(password string, cred Credential) error {
	salt, err := base64.StdEncoding.DecodeString(cred.Salt)
	if err != nil || len(salt) == 0 {
		return ErrInvalidSalt
	}
	stored, err := base64.StdEncoding.DecodeString(cred.Hash)
	if err != nil || len(stored) == 0 {
		return ErrInvalidCredential
	}

	key := h.derive(password, salt)
	if subtle.ConstantTimeCompare(key, stored) != 1 {
		return ErrMismatch
	}
	return nil
}

func (h *PBKDF2Hasher) derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.iterations, h.keyLength, sha256.New)
}
