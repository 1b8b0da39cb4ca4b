package crypto

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/arthur-debert/lkdots/pkg/errors"
	"github.com/arthur-debert/lkdots/pkg/logging"
	"github.com/arthur-debert/lkdots/pkg/planner"
)

// EncryptFile writes an ASCII-armored, passphrase-protected age container
// next to src, named src + the reserved suffix, created 0600. The
// plaintext source is left untouched; age supplies a fresh salt and
// nonce per invocation, so re-encrypting identical plaintext never
// reproduces identical ciphertext.
func EncryptFile(src string, secret *Secret) error {
	logger := logging.GetLogger("crypto")
	logger.Debug().Str("file", src).Msg("Encrypting file")

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open source file %s", src)
	}
	defer func() { _ = in.Close() }()

	recipient, err := age.NewScryptRecipient(secret.Expose())
	if err != nil {
		return errors.Wrap(err, errors.ErrCrypto, "failed to derive encryption key")
	}

	dst := src + planner.ReservedSuffix
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create ciphertext file %s", dst)
	}

	armored := armor.NewWriter(out)
	w, err := age.Encrypt(armored, recipient)
	if err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrCrypto, "failed to start encryption for %s", src)
	}

	if _, err := io.Copy(w, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrCrypto, "failed to encrypt %s", src)
	}
	if err := w.Close(); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrCrypto, "failed to finalize encryption for %s", src)
	}
	if err := armored.Close(); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrCrypto, "failed to finalize armor for %s", src)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write ciphertext file %s", dst)
	}

	return nil
}

// DecryptedName derives the plaintext path by stripping exactly the
// reserved suffix. The suffix must be present and the remaining stem
// non-empty.
func DecryptedName(src string) (string, error) {
	base := filepath.Base(src)
	if !strings.HasSuffix(base, planner.ReservedSuffix) {
		return "", errors.Newf(errors.ErrInvalidName, "invalid encrypted file name: %s", src)
	}
	stem := strings.TrimSuffix(base, planner.ReservedSuffix)
	if stem == "" {
		return "", errors.Newf(errors.ErrInvalidName, "invalid encrypted file name: %s", src)
	}
	return filepath.Join(filepath.Dir(src), stem), nil
}

// DecryptFile streams the container at src into the file named by its
// stem, created 0600. The write goes through a temp file renamed into
// place only after the authentication tag verifies, so the destination
// is either fully correct or untouched. A wrong passphrase or corrupt
// container is a hard error.
func DecryptFile(src string, secret *Secret) error {
	logger := logging.GetLogger("crypto")

	dst, err := DecryptedName(src)
	if err != nil {
		return err
	}
	logger.Debug().Str("file", src).Str("dest", dst).Msg("Decrypting file")

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open encrypted file %s", src)
	}
	defer func() { _ = in.Close() }()

	identity, err := age.NewScryptIdentity(secret.Expose())
	if err != nil {
		return errors.Wrap(err, errors.ErrCrypto, "failed to derive decryption key")
	}

	r, err := age.Decrypt(containerReader(in), identity)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCrypto, "failed to decrypt %s (wrong passphrase or corrupt file?)", src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".lkdots-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create output file for %s", dst)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to set permissions on %s", dst)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, errors.ErrCrypto, "failed to decrypt %s (wrong passphrase or corrupt file?)", src)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write decrypted file %s", dst)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move decrypted file into place at %s", dst)
	}

	return nil
}

// containerReader sniffs whether the input is ASCII-armored and unwraps
// it when it is, so both armored and binary age containers decrypt.
func containerReader(in io.Reader) io.Reader {
	br := bufio.NewReader(in)
	peek, _ := br.Peek(len(armor.Header))
	if string(peek) == armor.Header {
		return armor.NewReader(br)
	}
	return br
}
