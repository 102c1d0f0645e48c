package drng

import (
	"bytes"
	"math/bits"
	"testing"

	"golang.org/x/crypto/sha3"
)

func TestExpandSeedDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0xA5}, 32)
	a := expandSeed(seed, "kyber_keygen")
	b := expandSeed(seed, "kyber_keygen")
	if len(a) != expandedSeedLen {
		t.Fatalf("expected %d bytes, got %d", expandedSeedLen, len(a))
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same seed and domain expanded to different outputs")
	}
}

func TestExpandSeedDomainSeparation(t *testing.T) {
	seed := []byte("one seed shared by every operation class")
	domains := []string{
		"kyber_keygen",
		"dilithium_keygen",
		"kyber_kem_self",
		"kyber_keyge",
		"x",
		"",
	}
	seen := make(map[string]string)
	for _, d := range domains {
		out := string(expandSeed(seed, d))
		if prev, dup := seen[out]; dup {
			t.Fatalf("domains %q and %q expanded to identical output", prev, d)
		}
		seen[out] = d
	}
}

func TestExpandSeedSensitivity(t *testing.T) {
	seed := make([]byte, 32)
	base := expandSeed(seed, "kyber_keygen")
	for bit := 0; bit < len(seed)*8; bit += 7 {
		flipped := bytes.Clone(seed)
		flipped[bit/8] ^= 1 << (bit % 8)
		out := expandSeed(flipped, "kyber_keygen")
		diff := 0
		for i := range out {
			diff += bits.OnesCount8(out[i] ^ base[i])
		}
		// 384 output bits, a healthy expansion flips about half. Anything
		// under a quarter means the seed barely influences the output.
		if diff < 96 {
			t.Fatalf("flipping seed bit %d changed only %d of %d output bits", bit, diff, len(base)*8)
		}
	}
}

func TestExpandSeedMatchesSHAKE256(t *testing.T) {
	seed := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x11, 0x22, 0x33}
	h := sha3.NewShake256()
	h.Write([]byte(seedPrefix))
	h.Write([]byte("dilithium_keygen"))
	h.Write(seed)
	want := make([]byte, expandedSeedLen)
	h.Read(want)

	got := expandSeed(seed, "dilithium_keygen")
	if !bytes.Equal(got, want) {
		t.Fatalf("expansion disagrees with independent SHAKE256:\ngot  %x\nwant %x", got, want)
	}
}
