package lib

import (
	"testing"

	"happycrafts_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

var testParams = &structs.ArgonParams{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

func TestEncodeDecodeArgon2HashRoundTrip(t *testing.T) {
	salt := []byte("0123456789abcdef")
	hash := argon2.IDKey([]byte("correct horse battery staple"), salt, testParams.Time, testParams.Memory, testParams.Threads, testParams.KeyLen)

	encoded := EncodeArgon2Hash(hash, salt, testParams)

	decoded, err := DecodeArgon2Hash(encoded)
	require.NoError(t, err)
	assert.Equal(t, testParams.Memory, decoded.Memory)
	assert.Equal(t, testParams.Time, decoded.Time)
	assert.Equal(t, testParams.Threads, decoded.Threads)
	assert.Equal(t, testParams.KeyLen, decoded.KeyLen)
	assert.Equal(t, salt, decoded.Salt)
	assert.Equal(t, hash, decoded.Hash)
}

func TestDecodeArgon2HashRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"not a hash":        "hunter2",
		"wrong field count": "$argon2id$v=19$m=65536,t=1,p=4$salt",
		"wrong algorithm":   "$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"bad parameters":    "$argon2id$v=19$m=what$c2FsdA$aGFzaA",
		"bad salt encoding": "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeArgon2Hash(input)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestDecodeArgon2HashRejectsWrongVersion(t *testing.T) {
	_, err := DecodeArgon2Hash("$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare([]byte("same"), []byte("same")))
	assert.False(t, SecureCompare([]byte("same"), []byte("different")))
	assert.False(t, SecureCompare([]byte("same"), []byte("sam")))
}
