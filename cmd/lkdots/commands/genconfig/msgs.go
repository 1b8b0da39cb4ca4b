package genconfig

// Message constants
const (
	MsgShort   = "Generate a commented sample manifest"
	MsgLong    = "Output a commented sample manifest to stdout, or write it to the current directory with -w. An existing file is never overwritten."
	MsgExample = `  lkdots gen-config          # Output to stdout
  lkdots gen-config -w       # Write to ./lkdots.toml`
)
