package wallet

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"golang.org/x/crypto/scrypt"

	"github.com/vaultlabs/go-vault/common/types"
	vcrypto "github.com/vaultlabs/go-vault/crypto"
	"github.com/vaultlabs/go-vault/wallet/walleterrors"
)

const (
	keystoreVersion = 1

	scryptKeyLen = 32
	scryptN      = 4096
	scryptR      = 8
	scryptP      = 6
)

type cryptoParams struct {
	CipherText string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Salt       string `json:"salt"`
	ScryptN    int    `json:"scryptN"`
	ScryptR    int    `json:"scryptR"`
	ScryptP    int    `json:"scryptP"`
}

type keystoreFile struct {
	Address types.Address `json:"address"`
	Crypto  cryptoParams  `json:"crypto"`
	Version int           `json:"version"`
}

// CryptoStore reads and writes one encrypted key seed per file. The seed is
// sealed with AES-GCM under a scrypt-derived key.
type CryptoStore struct {
	KeystoreFilename string
}

func (ks CryptoStore) StoreSeed(addr types.Address, seed []byte, password string) error {
	salt := vcrypto.GetEntropyCSPRNG(32)
	derivedKey, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return err
	}

	cipherText, nonce, err := vcrypto.AesGCMEncrypt(derivedKey, seed)
	if err != nil {
		return err
	}

	content := keystoreFile{
		Address: addr,
		Crypto: cryptoParams{
			CipherText: hex.EncodeToString(cipherText),
			Nonce:      hex.EncodeToString(nonce),
			Salt:       hex.EncodeToString(salt),
			ScryptN:    scryptN,
			ScryptR:    scryptR,
			ScryptP:    scryptP,
		},
		Version: keystoreVersion,
	}

	data, err := json.MarshalIndent(content, "", "    ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(ks.KeystoreFilename), 0700); err != nil {
		return err
	}
	return ioutil.WriteFile(ks.KeystoreFilename, data, 0600)
}

func (ks CryptoStore) ExtractKey(password string) (types.Address, ed25519.PrivateKey, error) {
	data, err := ioutil.ReadFile(ks.KeystoreFilename)
	if err != nil {
		return types.Address{}, nil, err
	}

	content := &keystoreFile{}
	if err := json.Unmarshal(data, content); err != nil {
		return types.Address{}, nil, err
	}

	salt, err := hex.DecodeString(content.Crypto.Salt)
	if err != nil {
		return types.Address{}, nil, walleterrors.ErrDecryptKey
	}
	nonce, err := hex.DecodeString(content.Crypto.Nonce)
	if err != nil {
		return types.Address{}, nil, walleterrors.ErrDecryptKey
	}
	cipherText, err := hex.DecodeString(content.Crypto.CipherText)
	if err != nil {
		return types.Address{}, nil, walleterrors.ErrDecryptKey
	}

	derivedKey, err := scrypt.Key([]byte(password), salt,
		content.Crypto.ScryptN, content.Crypto.ScryptR, content.Crypto.ScryptP, scryptKeyLen)
	if err != nil {
		return types.Address{}, nil, err
	}

	seed, err := vcrypto.AesGCMDecrypt(derivedKey, cipherText, nonce)
	if err != nil {
		return types.Address{}, nil, walleterrors.ErrDecryptKey
	}

	key := ed25519.NewKeyFromSeed(seed)
	if types.PrikeyToAddress(key) != content.Address {
		return types.Address{}, nil, walleterrors.ErrDecryptKey
	}
	return content.Address, key, nil
}
