// Package keymat produces post-quantum key material deterministically
// from caller-supplied seeds. All randomness the primitives library
// consumes while a generation runs comes from a drng scope, so identical
// seeds always reproduce identical keys.
package keymat

import (
	"errors"
	"fmt"

	"github.com/cloudflare/circl/kem"
	kemschemes "github.com/cloudflare/circl/kem/schemes"
	"github.com/cloudflare/circl/sign"
	signschemes "github.com/cloudflare/circl/sign/schemes"

	"github.com/q4lab/pqwallet/internal/drng"
)

// Domain tags keep the deterministic streams for the three operation
// classes independent even when they share one seed. Fixed protocol
// constants; changing one changes every key it derives.
const (
	domainKEMKeygen = "kyber_keygen"
	domainSIGKeygen = "dilithium_keygen"
	domainKEMSelf   = "kyber_kem_self"
)

// Preferred standardized names first, legacy aliases after. The first
// name the library resolves wins; extend the list to support new aliases.
var (
	kemAliases = []string{"ML-KEM-1024", "Kyber1024"}
	sigAliases = []string{"ML-DSA-65", "Dilithium3"}
)

var (
	// ErrSchemeUnavailable means no alias resolved to an algorithm.
	ErrSchemeUnavailable = errors.New("scheme unavailable")
	// ErrKeypairGeneration means the library failed to produce a keypair.
	ErrKeypairGeneration = errors.New("keypair generation failed")
	// ErrEncapsulation means the self-test encapsulation failed.
	ErrEncapsulation = errors.New("encapsulation failed")
)

// KEMKeypair holds raw encapsulation-scheme key material. Lengths are
// whatever the resolved scheme advertises; the contents are opaque here.
type KEMKeypair struct {
	Public  []byte
	Private []byte
}

// SIGKeypair holds raw signature-scheme key material.
type SIGKeypair struct {
	Public  []byte
	Private []byte
}

// KEMSelfTest is a keypair plus one encapsulation made against its
// public key.
type KEMSelfTest struct {
	KEMKeypair
	Ciphertext []byte
	Shared     []byte
}

func kemScheme() (kem.Scheme, error) {
	for _, name := range kemAliases {
		if s := kemschemes.ByName(name); s != nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: tried %v", ErrSchemeUnavailable, kemAliases)
}

func sigScheme() (sign.Scheme, error) {
	for _, name := range sigAliases {
		if s := signschemes.ByName(name); s != nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: tried %v", ErrSchemeUnavailable, sigAliases)
}

// GenerateKEMKeypair derives an encapsulation keypair from seed.
func GenerateKEMKeypair(seed []byte) (*KEMKeypair, error) {
	scope, err := drng.Open(seed, domainKEMKeygen)
	if err != nil {
		return nil, err
	}
	defer scope.Close()

	sch, err := kemScheme()
	if err != nil {
		return nil, err
	}
	kp, _, err := kemKeypair(sch)
	return kp, err
}

// GenerateSIGKeypair derives a signature keypair from seed.
func GenerateSIGKeypair(seed []byte) (*SIGKeypair, error) {
	scope, err := drng.Open(seed, domainSIGKeygen)
	if err != nil {
		return nil, err
	}
	defer scope.Close()

	sch, err := sigScheme()
	if err != nil {
		return nil, err
	}
	pub, priv, err := sch.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeypairGeneration, err)
	}
	pk, err := pub.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: marshal public key: %v", ErrKeypairGeneration, err)
	}
	sk, err := priv.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: marshal private key: %v", ErrKeypairGeneration, err)
	}
	if len(pk) != sch.PublicKeySize() || len(sk) != sch.PrivateKeySize() {
		return nil, fmt.Errorf("%w: %s produced %d/%d byte keys, scheme advertises %d/%d",
			ErrKeypairGeneration, sch.Name(), len(pk), len(sk), sch.PublicKeySize(), sch.PrivateKeySize())
	}
	return &SIGKeypair{Public: pk, Private: sk}, nil
}

// SelfTestKEM derives an encapsulation keypair from seed and then
// encapsulates against the fresh public key, both under one scope.
func SelfTestKEM(seed []byte) (*KEMSelfTest, error) {
	scope, err := drng.Open(seed, domainKEMSelf)
	if err != nil {
		return nil, err
	}
	defer scope.Close()

	sch, err := kemScheme()
	if err != nil {
		return nil, err
	}
	kp, pub, err := kemKeypair(sch)
	if err != nil {
		return nil, err
	}
	ct, ss, err := sch.Encapsulate(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncapsulation, err)
	}
	if len(ct) != sch.CiphertextSize() || len(ss) != sch.SharedKeySize() {
		return nil, fmt.Errorf("%w: %s produced %d/%d byte ciphertext/shared secret, scheme advertises %d/%d",
			ErrEncapsulation, sch.Name(), len(ct), len(ss), sch.CiphertextSize(), sch.SharedKeySize())
	}
	return &KEMSelfTest{KEMKeypair: *kp, Ciphertext: ct, Shared: ss}, nil
}

// Decapsulate recovers the shared secret for a ciphertext produced by
// SelfTestKEM. Fully deterministic, so it needs no scope.
func Decapsulate(private, ciphertext []byte) ([]byte, error) {
	sch, err := kemScheme()
	if err != nil {
		return nil, err
	}
	sk, err := sch.UnmarshalBinaryPrivateKey(private)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncapsulation, err)
	}
	ss, err := sch.Decapsulate(sk, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncapsulation, err)
	}
	return ss, nil
}

// kemKeypair generates and marshals one keypair, returning the live
// public key so callers can encapsulate without a round-trip.
func kemKeypair(sch kem.Scheme) (*KEMKeypair, kem.PublicKey, error) {
	pub, priv, err := sch.GenerateKeyPair()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrKeypairGeneration, err)
	}
	pk, err := pub.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: marshal public key: %v", ErrKeypairGeneration, err)
	}
	sk, err := priv.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: marshal private key: %v", ErrKeypairGeneration, err)
	}
	if len(pk) != sch.PublicKeySize() || len(sk) != sch.PrivateKeySize() {
		return nil, nil, fmt.Errorf("%w: %s produced %d/%d byte keys, scheme advertises %d/%d",
			ErrKeypairGeneration, sch.Name(), len(pk), len(sk), sch.PublicKeySize(), sch.PrivateKeySize())
	}
	return &KEMKeypair{Public: pk, Private: sk}, pub, nil
}
