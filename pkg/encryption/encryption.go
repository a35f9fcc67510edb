// Package encryption provides the reversible field encryption used for personal data at rest
// (address lines, first and last names).
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength     = 64
	ivLength       = 16
	tagLength      = 16
	keyLength      = 32
	pbkdf2Rounds   = 100000
	minCipherBytes = saltLength + ivLength + tagLength
)

var ErrMalformedCiphertext = errors.New("encryption: malformed ciphertext")

// Cipher encrypts and decrypts single string values.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// AESCipher is AES-256-GCM with a per-value salt. The key is derived from the secret with
// PBKDF2-SHA512. Output is hex(salt | iv | tag | ciphertext).
type AESCipher struct {
	secret []byte
}

func NewAESCipher(secret string) (*AESCipher, error) {
	if secret == "" {
		return nil, errors.New("encryption: secret must not be empty")
	}
	return &AESCipher{secret: []byte(secret)}, nil
}

func (c *AESCipher) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	iv := make([]byte, ivLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("encryption: read salt: %w", err)
	}
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("encryption: read iv: %w", err)
	}

	gcm, err := c.gcm(salt)
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	body, tag := sealed[:len(sealed)-tagLength], sealed[len(sealed)-tagLength:]

	out := make([]byte, 0, minCipherBytes+len(body))
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, tag...)
	out = append(out, body...)
	return hex.EncodeToString(out), nil
}

func (c *AESCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil || len(raw) < minCipherBytes {
		return "", ErrMalformedCiphertext
	}

	salt := raw[:saltLength]
	iv := raw[saltLength : saltLength+ivLength]
	tag := raw[saltLength+ivLength : minCipherBytes]
	body := raw[minCipherBytes:]

	gcm, err := c.gcm(salt)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(body)+tagLength)
	sealed = append(sealed, body...)
	sealed = append(sealed, tag...)

	plain, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("encryption: open: %w", err)
	}
	return string(plain), nil
}

func (c *AESCipher) gcm(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(c.secret, salt, pbkdf2Rounds, keyLength, sha512.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return nil, fmt.Errorf("encryption: new gcm: %w", err)
	}
	return gcm, nil
}

// EncryptAll encrypts each value in order, stopping at the first failure.
func EncryptAll(c Cipher, values ...*string) error {
	for _, v := range values {
		enc, err := c.Encrypt(*v)
		if err != nil {
			return err
		}
		*v = enc
	}
	return nil
}

// DecryptAll is the inverse of EncryptAll.
func DecryptAll(c Cipher, values ...*string) error {
	for _, v := range values {
		dec, err := c.Decrypt(*v)
		if err != nil {
			return err
		}
		*v = dec
	}
	return nil
}
