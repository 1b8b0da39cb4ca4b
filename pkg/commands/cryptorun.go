package commands

import (
	"fmt"

	"github.com/arthur-debert/lkdots/pkg/batch"
	"github.com/arthur-debert/lkdots/pkg/config"
	"github.com/arthur-debert/lkdots/pkg/crypto"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/output"
)

// CryptoOptions configures an encrypt or decrypt run.
type CryptoOptions struct {
	ConfigPath string
	Mode       crypto.Mode
	Workers    int
}

// RunCrypto encrypts or decrypts every file under the manifest's
// encrypted entries. The file list is collected before the passphrase
// prompt so an empty run never asks for one.
func RunCrypto(opts CryptoOptions) error {
	logger := logging.GetLogger("commands.crypto")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := batch.CollectFiles(cfg.Entries, cfg.BaseDir, opts.Mode)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		output.Info("No files to process.")
		return nil
	}
	logger.Info().Int("files", len(files)).Str("mode", opts.Mode.String()).Msg("Processing files")

	secret, err := crypto.AcquirePassphrase(opts.Mode)
	if err != nil {
		return err
	}
	defer secret.Zero()

	var op batch.FileOp
	var title, verb string
	switch opts.Mode {
	case crypto.ModeEncrypt:
		op = crypto.EncryptFile
		title = "Encrypting"
		verb = "encrypted"
	case crypto.ModeDecrypt:
		op = crypto.DecryptFile
		title = "Decrypting"
		verb = "decrypted"
	}

	observe, stop := output.NewProgressObserver(len(files), title)
	err = batch.Process(files, secret, op, opts.Workers, observe)
	stop()
	if err != nil {
		return err
	}

	output.Success(fmt.Sprintf("Successfully %s %d file(s)", verb, len(files)))
	return nil
}
