// Package cli dispatches pqwallet commands and maps failures to exit
// statuses. Success output is a single JSON line on stdout; every
// failure writes a message to stderr and nothing to stdout.
package cli

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/q4lab/pqwallet/internal/keymat"
)

// Exit statuses, one per failure kind.
const (
	exitOK          = 0
	exitUsage       = 1
	exitUnavailable = 2
	exitKeypair     = 3
	exitEncaps      = 4
	exitRuntime     = 99
)

const usage = `usage:
  pqwallet generate-encapsulation-keypair-from-seed <seed_hex>
  pqwallet generate-signature-keypair-from-seed <seed_hex>
  pqwallet self-test-encapsulation-from-seed <seed_hex>
`

// Field order fixes the key order of the emitted JSON object.
type kemOutput struct {
	Public  string `json:"kyber_public_b64"`
	Private string `json:"kyber_private_b64"`
}

type sigOutput struct {
	Public  string `json:"dilithium_public_b64"`
	Private string `json:"dilithium_private_b64"`
}

type selfTestOutput struct {
	Public  string `json:"kyber_public_b64"`
	Private string `json:"kyber_private_b64"`
	Shared  string `json:"shared_b64"`
}

var commands = map[string]func(seed []byte) (any, error){
	"generate-encapsulation-keypair-from-seed": runKEMKeypair,
	"generate-signature-keypair-from-seed":     runSIGKeypair,
	"self-test-encapsulation-from-seed":        runSelfTest,
}

// Run executes one command against one hex seed and returns the process
// exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		return exitUsage
	}
	seed, err := hex.DecodeString(args[1])
	if err != nil {
		fmt.Fprintf(stderr, "error: invalid seed hex: %v\n", err)
		return exitRuntime
	}
	out, err := cmd(seed)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitStatus(err)
	}
	line, err := json.Marshal(out)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitRuntime
	}
	fmt.Fprintf(stdout, "%s\n", line)
	return exitOK
}

func runKEMKeypair(seed []byte) (any, error) {
	kp, err := keymat.GenerateKEMKeypair(seed)
	if err != nil {
		return nil, err
	}
	return kemOutput{Public: b64(kp.Public), Private: b64(kp.Private)}, nil
}

func runSIGKeypair(seed []byte) (any, error) {
	kp, err := keymat.GenerateSIGKeypair(seed)
	if err != nil {
		return nil, err
	}
	return sigOutput{Public: b64(kp.Public), Private: b64(kp.Private)}, nil
}

func runSelfTest(seed []byte) (any, error) {
	st, err := keymat.SelfTestKEM(seed)
	if err != nil {
		return nil, err
	}
	return selfTestOutput{Public: b64(st.Public), Private: b64(st.Private), Shared: b64(st.Shared)}, nil
}

func exitStatus(err error) int {
	switch {
	case errors.Is(err, keymat.ErrSchemeUnavailable):
		return exitUnavailable
	case errors.Is(err, keymat.ErrKeypairGeneration):
		return exitKeypair
	case errors.Is(err, keymat.ErrEncapsulation):
		return exitEncaps
	default:
		return exitRuntime
	}
}

func b64(p []byte) string {
	return base64.StdEncoding.EncodeToString(p)
}
