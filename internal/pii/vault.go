package pii

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Vault 는 근로자 주민등록번호를 다루는 기능 인터페이스이다.
// 테스트에서는 가짜 구현으로 대체할 수 있다.
type Vault interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
	Hash(plaintext string) string
	Mask(plaintext string) string
}

var ErrInvalidCiphertext = errors.New("잘못된 암호문입니다")

// AESVault 는 AES-256-GCM 으로 암호화하고 HMAC-SHA256 으로
// 중복 검사용 해시를 만든다. 두 키는 서로 달라야 한다.
type AESVault struct {
	aead    cipher.AEAD
	hmacKey []byte
}

func NewAESVault(encryptionKeyHex string, hmacKeyHex string) (*AESVault, error) {
	encryptionKey, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, fmt.Errorf("암호화 키 파싱 실패: %w", err)
	}
	if len(encryptionKey) != 32 {
		return nil, errors.New("암호화 키는 32바이트여야 합니다")
	}

	hmacKey, err := hex.DecodeString(hmacKeyHex)
	if err != nil {
		return nil, fmt.Errorf("해시 키 파싱 실패: %w", err)
	}
	if len(hmacKey) == 0 {
		return nil, errors.New("해시 키가 비어 있습니다")
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESVault{aead: aead, hmacKey: hmacKey}, nil
}

func (v *AESVault) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	// nonce 를 암호문 앞에 붙여서 함께 저장한다
	sealed := v.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (v *AESVault) Decrypt(ciphertext string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrInvalidCiphertext
	}
	if len(sealed) < v.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, body := sealed[:v.aead.NonceSize()], sealed[v.aead.NonceSize():]
	plaintext, err := v.aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}

func (v *AESVault) Hash(plaintext string) string {
	mac := hmac.New(sha256.New, v.hmacKey)
	mac.Write([]byte(normalizeRRN(plaintext)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Mask 는 생년월일 부분과 뒷자리 첫 글자만 남긴다. 예: 901231-1******
func (v *AESVault) Mask(plaintext string) string {
	rrn := normalizeRRN(plaintext)
	if len(rrn) != 13 {
		// 형식이 다르면 전체를 가린다
		return strings.Repeat("*", len(rrn))
	}
	return rrn[:6] + "-" + rrn[6:7] + strings.Repeat("*", 6)
}

func normalizeRRN(rrn string) string {
	return strings.ReplaceAll(strings.TrimSpace(rrn), "-", "")
}
