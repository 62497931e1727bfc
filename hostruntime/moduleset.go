package hostruntime

// StatTarget models the stat hook's argument as a tagged variant: either a
// file descriptor or a path. The host's private stat API has varied its
// calling convention across major versions ((path) vs. (context, path));
// rather than branch per version, the hook inspects argument types.
type StatTarget struct {
	Fd    int
	Path  string
	HasFd bool
}

// ParseStatArgs selects a StatTarget from the stat hook's positional
// arguments by type, tolerating both calling conventions the host uses.
func ParseStatArgs(args ...interface{}) StatTarget {
	for _, a := range args {
		switch v := a.(type) {
		case int:
			return StatTarget{Fd: v, HasFd: true}
		case string:
			return StatTarget{Path: v}
		}
	}
	return StatTarget{}
}

// ModuleSystem is the host runtime's filesystem-primitive and
// module-resolver hook table: the set of function slots Runtime Integration
// captures, replaces, and later restores.
//
// A zero ModuleSystem has nil fields; Installer treats a nil field as "no
// original to preserve" and leaves it nil on uninstall.
type ModuleSystem struct {
	// ReadFile returns the raw text of path, and whether it exists.
	ReadFile func(path string) (text string, ok bool)

	// ReadJSON returns the text of path, and whether it is present. An
	// empty-but-present file is distinguished from an absent one: present
	// is false only when the file does not exist at all.
	ReadJSON func(path string) (text string, present bool)

	// Stat resolves a StatTarget. For a descriptor, it returns 0 on success
	// and a negated ENOENT-style code on failure. For a path, it returns 1
	// for a directory, 0 for a file, and a negated ENOENT-style code if
	// absent.
	Stat func(target StatTarget) int

	// FindPath resolves a module request against a set of search paths, in
	// the host runtime's own native convention.
	FindPath func(request string, searchPaths []string) (resolved string, ok bool)
}
