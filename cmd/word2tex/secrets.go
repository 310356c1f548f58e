package main

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// credential files with this suffix are stored encrypted
const encryptedSuffix = ".encrypted"

var salt = []byte{
	112, 19, 201, 54, 8, 233, 97, 140,
	61, 178, 25, 206, 87, 3, 166, 249,
}

var errCiphertextTooShort = errors.New("ciphertext too short")

type secretsCryptArgs struct {
	Paths []string `arg:"positional,required" help:"files to process"`
}

// deriveKey turns a password into an AES-256 key
func deriveKey(password []byte) []byte {
	return pbkdf2.Key(password, salt, 4096, 32, sha1.New)
}

// promptKey reads a password from the terminal and derives a key from it
func promptKey() ([]byte, error) {
	fmt.Fprint(os.Stderr, "Enter password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("error reading password: %w", err)
	}
	return deriveKey(password), nil
}

// processSecrets encrypts or decrypts each file, writing the result next to
// it with the .encrypted suffix added or removed
func processSecrets(args *secretsCryptArgs, f func([]byte, []byte) ([]byte, error)) error {
	key, err := promptKey()
	if err != nil {
		return err
	}

	for _, path := range args.Paths {
		err := processSecret(path, key, f)
		if err != nil {
			return err
		}
	}
	return nil
}

func processSecret(path string, key []byte, f func([]byte, []byte) ([]byte, error)) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, err := f(in, key)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", path, err)
	}

	return os.WriteFile(secretPath(path), out, 0600)
}

// secretPath toggles the .encrypted suffix
func secretPath(path string) string {
	if strings.HasSuffix(path, encryptedSuffix) {
		return strings.TrimSuffix(path, encryptedSuffix)
	}
	return path + encryptedSuffix
}

func newGCM(key []byte) (cipher.AEAD, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(c)
}

// encrypt seals plaintext with AES-GCM, prefixing the nonce
func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errCiphertextTooShort
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
