package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/akshaydev2089/payslip-vault/dto"
)

// EncryptionService is the byte-oriented encryption collaborator the
// pipeline encrypts payslips at rest with.
type EncryptionService interface {
	Encrypt(data []byte) ([]byte, error)
	Decrypt(data []byte) ([]byte, error)
}

const keyIterations = 100_000

// AESEncryptionService encrypts with AES-256-GCM using a key derived from a
// passphrase via PBKDF2. The random nonce is prepended to each ciphertext,
// so encrypting the same bytes twice yields different blobs that decrypt to
// the same plaintext.
//
// Key derivation is deferred to first use and runs at most once, even under
// concurrent first use.
type AESEncryptionService struct {
	passphrase string
	salt       []byte

	once    sync.Once
	gcm     cipher.AEAD
	initErr error
}

func NewAESEncryptionService(passphrase string, salt []byte) *AESEncryptionService {
	return &AESEncryptionService{passphrase: passphrase, salt: salt}
}

func (s *AESEncryptionService) init() {
	if s.passphrase == "" {
		s.initErr = fmt.Errorf("encryption passphrase is empty: %w", dto.ErrNotInitialized)
		return
	}
	key := pbkdf2.Key([]byte(s.passphrase), s.salt, keyIterations, 32, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		s.initErr = err
		return
	}
	s.gcm, s.initErr = cipher.NewGCM(block)
}

func (s *AESEncryptionService) Encrypt(data []byte) ([]byte, error) {
	s.once.Do(s.init)
	if s.initErr != nil {
		return nil, s.initErr
	}

	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.gcm.Seal(nonce, nonce, data, nil), nil
}

func (s *AESEncryptionService) Decrypt(data []byte) ([]byte, error) {
	s.once.Do(s.init)
	if s.initErr != nil {
		return nil, s.initErr
	}

	if len(data) < s.gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext shorter than nonce")
	}
	nonce, ciphertext := data[:s.gcm.NonceSize()], data[s.gcm.NonceSize():]
	plaintext, err := s.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt payslip data: %w", err)
	}
	return plaintext, nil
}
