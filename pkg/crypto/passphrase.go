package crypto

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/logging"
)

// EnvPassphrase names the environment override for non-interactive runs.
const EnvPassphrase = "LKDOTS_PASSPHRASE"

// Mode selects which files a batch operates on and whether acquisition
// asks for a confirmation.
type Mode int

const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)

func (m Mode) String() string {
	if m == ModeEncrypt {
		return "encrypt"
	}
	return "decrypt"
}

// promptPassword reads a passphrase from the terminal without echo.
// Stubbed in tests.
var promptPassword = func(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// AcquirePassphrase obtains the batch passphrase: from EnvPassphrase when
// set, otherwise from a single interactive prompt. Encrypt mode without
// the environment override prompts a second confirmation and aborts on
// mismatch before any file is touched.
func AcquirePassphrase(mode Mode) (*Secret, error) {
	logger := logging.GetLogger("crypto")

	if v, ok := os.LookupEnv(EnvPassphrase); ok && v != "" {
		logger.Debug().Str("mode", mode.String()).Msg("Using passphrase from environment")
		return NewSecret([]byte(v)), nil
	}

	first, err := promptPassword("Passphrase: ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read passphrase")
	}

	if mode == ModeEncrypt {
		again, err := promptPassword("Input passphrase again: ")
		if err != nil {
			zero(first)
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read passphrase confirmation")
		}
		equal := constantTimeEqual(first, again)
		zero(again)
		if !equal {
			zero(first)
			return nil, errors.New(errors.ErrPassphraseMismatch, "passphrase verification failed")
		}
	}

	return NewSecret(first), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
