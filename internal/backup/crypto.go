package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

// Snapshot framing: [16-byte salt][12-byte nonce][AES-256-GCM ciphertext].
// The salt is generated once per installation and persisted by the manager
// (settings key "backup_salt"), then embedded in every snapshot so a file
// alone plus the passphrase is enough to restore.
const (
	saltSize  = 16
	nonceSize = 12
	keySize   = 32
)

// Argon2id parameters for passphrase-to-key derivation.
const (
	argonTime = 3
	argonMem  = 64 * 1024
	argonPar  = 4
)

// GenerateSalt returns 16 cryptographically random bytes for the manager
// to persist on first use.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

func deriveKey(passphrase string, salt []byte) cipher.AEAD {
	key := argon2.IDKey([]byte(passphrase), salt, argonTime, argonMem, argonPar, keySize)
	block, err := aes.NewCipher(key)
	if err != nil {
		// aes.NewCipher only fails on a bad key length; keySize is fixed.
		panic(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		panic(err)
	}
	return gcm
}

// Seal encrypts plaintext into the snapshot framing using the given
// passphrase and installation salt.
func Seal(plaintext []byte, passphrase string, salt []byte) ([]byte, error) {
	if len(salt) != saltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", saltSize, len(salt))
	}

	gcm := deriveKey(passphrase, salt)

	out := make([]byte, saltSize+nonceSize, saltSize+nonceSize+len(plaintext)+gcm.Overhead())
	copy(out, salt)
	nonce := out[saltSize : saltSize+nonceSize]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// Open decrypts a sealed snapshot. The salt comes from the snapshot itself,
// so only the passphrase is needed.
func Open(data []byte, passphrase string) ([]byte, error) {
	if len(data) < saltSize+nonceSize {
		return nil, fmt.Errorf("snapshot too small")
	}

	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+nonceSize]
	ciphertext := data[saltSize+nonceSize:]

	plaintext, err := deriveKey(passphrase, salt).Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plaintext, nil
}

// EncryptFile seals srcPath into a snapshot at dstPath.
func EncryptFile(srcPath, dstPath, passphrase string, salt []byte) error {
	plaintext, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	sealed, err := Seal(plaintext, passphrase, salt)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dstPath, sealed, 0600); err != nil {
		return fmt.Errorf("write encrypted file: %w", err)
	}
	return nil
}

// DecryptFile opens the snapshot at srcPath and writes the plaintext to
// dstPath.
func DecryptFile(srcPath, dstPath, passphrase string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read encrypted file: %w", err)
	}

	plaintext, err := Open(data, passphrase)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dstPath, plaintext, 0600); err != nil {
		return fmt.Errorf("write decrypted file: %w", err)
	}
	return nil
}
