package lkdots

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Link your dotfiles into place"
	MsgRootLong = `lkdots deploys dotfiles by symlinking the files and directories listed
in a TOML manifest to their target locations, letting git handle
versioning and history. Secret files can be encrypted with a passphrase
so their ciphertext containers are safe to commit.`
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagConfig   = "Path to the manifest file"
	MsgFlagSimulate = "Show what would be done without making changes"
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
)
