package encrypt

// Message constants
const (
	MsgShort = "Encrypt the files of entries marked for encryption"
	MsgLong  = `Encrypt walks every manifest entry with encrypt = true and writes an
armored, passphrase protected .enc container next to each plaintext
file. Existing containers are skipped; plaintext files are left in
place.

The passphrase is read from the LKDOTS_PASSPHRASE environment variable
when set, otherwise prompted for twice on the terminal.`
)
