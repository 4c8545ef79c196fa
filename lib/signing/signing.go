package signing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/nbd-wtf/go-nostr"
)

const (
	PublicKeyPrefix = "npub"
)

// DecodeKey decodes a bech32 key and returns its human readable part and
// the 32 raw key bytes.
func DecodeKey(serializedKey string) (string, []byte, error) {
	hrp, bytesToBits, err := bech32.Decode(serializedKey)
	if err != nil {
		return "", nil, err
	}

	keyBytes, err := bech32.ConvertBits(bytesToBits, 5, 8, false)
	if err != nil {
		return "", nil, err
	}

	if len(keyBytes) != 32 {
		return "", nil, fmt.Errorf("decoded key has %d bytes, expected 32", len(keyBytes))
	}

	return hrp, keyBytes, nil
}

// NormalizePublicKey accepts a public key as 64 hex characters or as an
// npub and returns lowercase hex. The key must be a valid x-only point.
func NormalizePublicKey(key string) (string, error) {
	key = strings.TrimSpace(key)

	var keyBytes []byte
	if strings.HasPrefix(strings.ToLower(key), PublicKeyPrefix+"1") {
		hrp, decoded, err := DecodeKey(key)
		if err != nil {
			return "", fmt.Errorf("invalid npub: %w", err)
		}
		if hrp != PublicKeyPrefix {
			return "", fmt.Errorf("unexpected key prefix %q", hrp)
		}
		keyBytes = decoded
	} else {
		decoded, err := hex.DecodeString(key)
		if err != nil || len(decoded) != 32 {
			return "", fmt.Errorf("public key must be 64 hex characters or an npub")
		}
		keyBytes = decoded
	}

	if _, err := schnorr.ParsePubKey(keyBytes); err != nil {
		return "", fmt.Errorf("public key is not on the curve: %w", err)
	}

	return hex.EncodeToString(keyBytes), nil
}

// VerifyEvent checks that the event id is the hash of its serialization and
// that the signature is a valid schnorr signature of that id by PubKey.
func VerifyEvent(event *nostr.Event) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}

	hash := sha256.Sum256(event.Serialize())
	if hex.EncodeToString(hash[:]) != event.ID {
		return fmt.Errorf("event id does not match its content")
	}

	pubKeyBytes, err := hex.DecodeString(event.PubKey)
	if err != nil {
		return fmt.Errorf("invalid pubkey: %w", err)
	}
	publicKey, err := schnorr.ParsePubKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("invalid pubkey: %w", err)
	}

	sigBytes, err := hex.DecodeString(event.Sig)
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}
	signature, err := schnorr.ParseSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	if !signature.Verify(hash[:], publicKey) {
		return fmt.Errorf("signature failed to verify")
	}

	return nil
}
