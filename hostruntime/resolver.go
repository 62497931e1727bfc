package hostruntime

import (
	"path"
	"strings"

	"github.com/snapfs/snapfs/overlay"
	"github.com/snapfs/snapfs/vpath"
)

// conditions is the condition set consulted when resolving a
// conditional-exports map. A map's keys are visited in manifest order, and
// the first key that belongs to this set selects its value.
var conditions = []string{"require", "node", "default"}

// resolveBareSpecifier implements the bare-specifier resolution algorithm
// against the package rooted at /snapshot/node_modules/<request>. It never
// fails loudly: any internal error (missing manifest, parse failure, no
// matching target) simply yields ("", false), leaving the caller to fall
// back to the host runtime's own original result.
func resolveBareSpecifier(ov *overlay.FS, request string) (string, bool) {
	base := vpath.Root + "/node_modules/" + request

	m, ok := readManifest(ov, base+"/package.json")
	if !ok {
		return "", false
	}

	if m.exports.kind != valueKindAbsent {
		if target, ok := resolveExports(m.exports); ok {
			if resolved, ok := resolveWithExtensions(ov, joinVirtual(base, target)); ok {
				return resolved, true
			}
		}
	} else {
		if resolved, ok := resolveMain(ov, base, m.main); ok {
			return resolved, true
		}
	}

	if resolved, ok := existsFile(ov, base+"/index.js"); ok {
		return resolved, true
	}
	if resolved, ok := existsFile(ov, base+"/dist/index.js"); ok {
		return resolved, true
	}
	if resolved, ok := existsFile(ov, base+"/dist/"+request+".js"); ok {
		return resolved, true
	}

	return "", false
}

// readManifest opens and parses the package.json at p, reporting false on
// any failure (missing file, parse error).
func readManifest(ov *overlay.FS, p string) (manifest, bool) {
	f, err := ov.Open(p)
	if err != nil {
		return manifest{}, false
	}
	defer f.Close()

	m, err := parseManifest(f)
	if err != nil {
		return manifest{}, false
	}
	return m, true
}

// resolveExports walks an exports field value, unwrapping a top-level "."
// subpath key first, then recursing through condition maps (the first key,
// in manifest order, that is in the condition set selects the value),
// returning the first literal string target found.
func resolveExports(v orderedValue) (string, bool) {
	if v.kind == valueKindObject {
		if dot, ok := v.get("."); ok {
			v = dot
		}
	}
	return resolveExportsTarget(v)
}

func resolveExportsTarget(v orderedValue) (string, bool) {
	switch v.kind {
	case valueKindString:
		return v.str, true
	case valueKindObject:
		for _, e := range v.entries {
			for _, cond := range conditions {
				if e.key == cond {
					return resolveExportsTarget(e.value)
				}
			}
		}
		return "", false
	default:
		return "", false
	}
}

// resolveMain implements the "main" field resolution branch: strip a
// leading "./", default empty/"." to "index.js", expand a trailing "/" to
// "index.js", then probe file, directory-index, and extension variants.
func resolveMain(ov *overlay.FS, base, main string) (string, bool) {
	main = strings.TrimPrefix(main, "./")
	if main == "" || main == "." {
		main = "index.js"
	}
	if strings.HasSuffix(main, "/") {
		main += "index.js"
	}

	joined := joinVirtual(base, main)

	if resolved, ok := existsFile(ov, joined); ok {
		return resolved, true
	}
	if isDir(ov, joined) {
		if resolved, ok := existsFile(ov, joined+"/index.js"); ok {
			return resolved, true
		}
	}
	return resolveWithExtensions(ov, joined)
}

// resolveWithExtensions returns p itself if it names an existing file, else
// tries appending .js, .json, .node in order.
func resolveWithExtensions(ov *overlay.FS, p string) (string, bool) {
	if resolved, ok := existsFile(ov, p); ok {
		return resolved, true
	}
	for _, ext := range []string{".js", ".json", ".node"} {
		if resolved, ok := existsFile(ov, p+ext); ok {
			return resolved, true
		}
	}
	return "", false
}

func existsFile(ov *overlay.FS, p string) (string, bool) {
	info, err := ov.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

func isDir(ov *overlay.FS, p string) bool {
	info, err := ov.Stat(p)
	return err == nil && info.IsDir()
}

func joinVirtual(base, rel string) string {
	return path.Join(base, rel)
}

// isBareSpecifier reports whether request is neither relative, absolute, nor
// drive-letter-prefixed, and therefore eligible for node_modules-style
// resolution.
func isBareSpecifier(request string) bool {
	if request == "" {
		return false
	}
	if strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../") {
		return false
	}
	if request == "." || request == ".." {
		return false
	}
	if strings.HasPrefix(request, "/") {
		return false
	}
	if len(request) >= 2 && request[1] == ':' && isDriveLetter(request[0]) {
		return false
	}
	return true
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
