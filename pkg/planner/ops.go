// Package planner turns one source→target mapping into an ordered list of
// filesystem operations without touching the filesystem. Only read-only
// lstat/readdir/canonicalize calls are made; mutation is the executor's job.
package planner

// ReservedSuffix marks encrypted container files. Sources carrying it are
// never linked directly; the crypto pipeline and the gitignore sync use
// the same suffix so all three agree on file state.
const ReservedSuffix = ".enc"

// OpKind enumerates the operations a plan can contain. lkdots only does
// these four things; everything else is orchestration.
type OpKind int

const (
	// OpMkdirp creates a directory and any missing parents.
	OpMkdirp OpKind = iota

	// OpSymlink creates a symbolic link at Target whose contents are the
	// Relative path to Source.
	OpSymlink

	// OpExisted records a target that already links to the right source.
	// Informational; executing it is a no-op.
	OpExisted

	// OpConflict records a target occupied by unrelated content. A plan
	// containing one must not be executed.
	OpConflict
)

// Op is a single planned operation. Which fields are meaningful depends
// on Kind: Path for Mkdirp/Existed/Conflict, Source/Target/Relative for
// Symlink.
type Op struct {
	Kind     OpKind
	Path     string
	Source   string
	Target   string
	Relative string
}

// Plan is the ordered operation list for one entry. Created fresh each
// run, discarded after execution.
type Plan []Op

// Conflicts returns the conflicting paths in the plan, in plan order.
func (p Plan) Conflicts() []string {
	var out []string
	for _, op := range p {
		if op.Kind == OpConflict {
			out = append(out, op.Path)
		}
	}
	return out
}

func (k OpKind) String() string {
	switch k {
	case OpMkdirp:
		return "mkdirp"
	case OpSymlink:
		return "symlink"
	case OpExisted:
		return "existed"
	case OpConflict:
		return "conflict"
	default:
		return "unknown"
	}
}
