package drng

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// drbg is the AES-256 CTR generator used by NIST known-answer tests:
// a 32-byte key and a 16-byte counter, both refreshed from cipher output
// after every request. Seeded once, no reseeding, no personalization.
type drbg struct {
	key [32]byte
	v   [16]byte
}

// newDRBG seeds a generator from exactly 48 bytes of expanded seed.
// Any other length is an internal-consistency failure, not user input.
func newDRBG(seed48 []byte) (*drbg, error) {
	if len(seed48) != expandedSeedLen {
		return nil, fmt.Errorf("drng: expanded seed must be %d bytes, got %d", expandedSeedLen, len(seed48))
	}
	d := &drbg{}
	d.update(seed48)
	return d, nil
}

func (d *drbg) block() cipher.Block {
	b, err := aes.NewCipher(d.key[:])
	if err != nil {
		// aes.NewCipher only fails on bad key length; key is fixed at 32.
		panic(err)
	}
	return b
}

func (d *drbg) incr() {
	for i := len(d.v) - 1; i >= 0; i-- {
		d.v[i]++
		if d.v[i] != 0 {
			break
		}
	}
}

// update is the CTR_DRBG update function: encrypt three counter blocks,
// xor in the provided entropy (if any), and split the result into the
// next key and counter.
func (d *drbg) update(provided []byte) {
	b := d.block()
	var tmp [expandedSeedLen]byte
	for i := 0; i < len(tmp); i += aes.BlockSize {
		d.incr()
		b.Encrypt(tmp[i:i+aes.BlockSize], d.v[:])
	}
	for i := range provided {
		tmp[i] ^= provided[i]
	}
	copy(d.key[:], tmp[:32])
	copy(d.v[:], tmp[32:])
}

// Read fills p with the next bytes of the deterministic stream. It never
// returns an error, satisfying io.Reader so the generator can stand in
// for crypto/rand.Reader.
func (d *drbg) Read(p []byte) (int, error) {
	b := d.block()
	var out [aes.BlockSize]byte
	for n := 0; n < len(p); n += aes.BlockSize {
		d.incr()
		b.Encrypt(out[:], d.v[:])
		copy(p[n:], out[:])
	}
	d.update(nil)
	return len(p), nil
}
