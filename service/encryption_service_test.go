package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc := NewAESEncryptionService("test-passphrase", []byte("test-salt"))

	plaintext := []byte("%PDF-1.4 payslip content")
	encrypted, err := svc.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)

	decrypted, err := svc.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptIsRandomized(t *testing.T) {
	svc := NewAESEncryptionService("test-passphrase", []byte("test-salt"))

	plaintext := []byte("same bytes")
	first, err := svc.Encrypt(plaintext)
	require.NoError(t, err)
	second, err := svc.Encrypt(plaintext)
	require.NoError(t, err)

	// different blobs, equivalent plaintext
	assert.NotEqual(t, first, second)

	firstBack, err := svc.Decrypt(first)
	require.NoError(t, err)
	secondBack, err := svc.Decrypt(second)
	require.NoError(t, err)
	assert.Equal(t, firstBack, secondBack)
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	svc := NewAESEncryptionService("test-passphrase", []byte("test-salt"))

	encrypted, err := svc.Encrypt([]byte("payslip"))
	require.NoError(t, err)

	encrypted[len(encrypted)-1] ^= 0xFF
	_, err = svc.Decrypt(encrypted)
	assert.Error(t, err)
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	svc := NewAESEncryptionService("test-passphrase", []byte("test-salt"))

	_, err := svc.Decrypt([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestEmptyPassphraseFailsOnFirstUse(t *testing.T) {
	svc := NewAESEncryptionService("", []byte("test-salt"))

	_, err := svc.Encrypt([]byte("payslip"))
	assert.Error(t, err)
}
