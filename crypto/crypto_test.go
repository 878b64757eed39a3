package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSize(t *testing.T) {
	for _, size := range []int{20, 32, 64} {
		digest := Hash(size, []byte("vault"))
		if len(digest) != size {
			t.Fatalf("digest size %d, want %d", len(digest), size)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	a := Hash256([]byte("deposit"), []byte("account"))
	b := Hash256([]byte("deposit"), []byte("account"))
	assert.Equal(t, a, b)

	c := Hash256([]byte("depositaccount"))
	assert.Equal(t, a, c)
}

func TestAesGCMRoundTrip(t *testing.T) {
	key := GetEntropyCSPRNG(32)
	plain := []byte("seed bytes for a vault keystore")

	cipherText, nonce, err := AesGCMEncrypt(key, plain)
	if err != nil {
		t.Fatal(err)
	}

	out, err := AesGCMDecrypt(key, cipherText, nonce)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plain, out) {
		t.Fatalf("decrypted text mismatch")
	}

	wrongKey := GetEntropyCSPRNG(32)
	_, err = AesGCMDecrypt(wrongKey, cipherText, nonce)
	assert.Error(t, err)
}
