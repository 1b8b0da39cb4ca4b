package decrypt

// Message constants
const (
	MsgShort = "Decrypt previously encrypted .enc containers"
	MsgLong  = `Decrypt walks every manifest entry with encrypt = true and restores the
plaintext file next to each .enc container. Plaintext is written
atomically, so a wrong passphrase never leaves a partial file behind.

The passphrase is read from the LKDOTS_PASSPHRASE environment variable
when set, otherwise prompted for on the terminal.`
)
