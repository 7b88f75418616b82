package credstore

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	errs "github.com/bandungjournal/bandung-client/internal/errors"
)

// sealed blob layout: magic || 16-byte scrypt salt || 24-byte nonce || box
var sealMagic = []byte("BJCRED1\x00")

const (
	saltLen = 16
	// Interactive scrypt parameters (N=2^15, r=8, p=1).
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

type sealer struct {
	passphrase []byte
}

func newSealer(passphrase string) *sealer {
	return &sealer{passphrase: []byte(passphrase)}
}

func (s *sealer) key(salt []byte) (*[32]byte, error) {
	derived, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, err
	}
	var key [32]byte
	copy(key[:], derived)
	return &key, nil
}

func (s *sealer) seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("[sealer seal] failed to generate salt: %w", err)
	}
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("[sealer seal] failed to generate nonce: %w", err)
	}

	key, err := s.key(salt)
	if err != nil {
		return nil, fmt.Errorf("[sealer seal] key derivation failed: %w", err)
	}

	out := make([]byte, 0, len(sealMagic)+saltLen+len(nonce)+len(plain)+secretbox.Overhead)
	out = append(out, sealMagic...)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, key), nil
}

func (s *sealer) open(blob []byte) ([]byte, error) {
	if !bytes.HasPrefix(blob, sealMagic) {
		return nil, fmt.Errorf("[sealer open] value is not sealed: %w", errs.ErrBadPassphrase)
	}
	rest := blob[len(sealMagic):]
	if len(rest) < saltLen+24+secretbox.Overhead {
		return nil, fmt.Errorf("[sealer open] sealed value truncated: %w", errs.ErrBadPassphrase)
	}

	salt := rest[:saltLen]
	var nonce [24]byte
	copy(nonce[:], rest[saltLen:saltLen+24])

	key, err := s.key(salt)
	if err != nil {
		return nil, fmt.Errorf("[sealer open] key derivation failed: %w", err)
	}

	plain, ok := secretbox.Open(nil, rest[saltLen+24:], &nonce, key)
	if !ok {
		return nil, errs.ErrBadPassphrase
	}
	return plain, nil
}
