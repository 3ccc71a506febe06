package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNewSignerFromMnemonic(t *testing.T) {
	signer, err := NewSignerFromMnemonic(testMnemonic)
	assert.NoError(t, err)
	assert.NotEmpty(t, signer.Address())

	// derivation is deterministic
	again, err := NewSignerFromMnemonic(testMnemonic)
	assert.NoError(t, err)
	assert.Equal(t, signer.Address(), again.Address())
}

func TestNewSignerFromMnemonicInvalid(t *testing.T) {
	_, err := NewSignerFromMnemonic("not a mnemonic")
	assert.Error(t, err)
}

func TestNewSignerFromBase58(t *testing.T) {
	source, err := NewSignerFromMnemonic(testMnemonic)
	assert.NoError(t, err)

	signer, err := NewSignerFromBase58(source.PrivateKey().String())
	assert.NoError(t, err)
	assert.Equal(t, source.Address(), signer.Address())
}

func TestNewSignerFromBase58Invalid(t *testing.T) {
	_, err := NewSignerFromBase58("!!not-base58!!")
	assert.Error(t, err)
}

func TestSign(t *testing.T) {
	signer, err := NewSignerFromMnemonic(testMnemonic)
	assert.NoError(t, err)

	sigOne, err := signer.Sign([]byte("payload"))
	assert.NoError(t, err)
	assert.Len(t, sigOne, 64)

	sigTwo, err := signer.Sign([]byte("payload"))
	assert.NoError(t, err)
	assert.Equal(t, sigOne, sigTwo)
}
