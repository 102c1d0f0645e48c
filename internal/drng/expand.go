// Package drng derives deterministic random sources from caller-supplied
// seeds and installs them as the process random source for the duration
// of a single operation.
package drng

import "github.com/cloudflare/circl/xof"

// seedPrefix separates this tool's derivations from any other use of
// SHAKE256. It is absorbed before everything else and must never change,
// or every derived key changes with it.
const seedPrefix = "oqs_wallet_cli"

// expandedSeedLen is the seed size the deterministic generator accepts.
const expandedSeedLen = 48

// expandSeed stretches an arbitrary-length seed and a domain tag into the
// fixed 48 bytes the generator is seeded with. The same seed under two
// different domain tags yields unrelated outputs, so one wallet seed can
// safely drive several operation classes.
func expandSeed(seed []byte, domain string) []byte {
	h := xof.SHAKE256.New()
	h.Write([]byte(seedPrefix))
	h.Write([]byte(domain))
	h.Write(seed)
	out := make([]byte, expandedSeedLen)
	h.Read(out)
	return out
}
