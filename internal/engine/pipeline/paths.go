package pipeline

import (
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/unbundle/internal/core/domain"
)

const vendorAnchor = "/" + domain.VendorDirName + "/"

// StripLoaderPrefix removes loader chains such as "babel!" or "image!" and returns
// the path after the last '!'.
func StripLoaderPrefix(p string) string {
	if i := strings.LastIndexByte(p, '!'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// HasLoaderPrefix reports whether the request carries a loader chain.
func HasLoaderPrefix(request string) bool {
	return strings.ContainsRune(request, '!')
}

// ToSlash converts a filesystem path to forward slashes.
func ToSlash(p string) string {
	return filepath.ToSlash(p)
}

// SanitizeRelative cleans an output-relative path and strips leading parent segments
// so the result never escapes the output root.
func SanitizeRelative(p string) string {
	p = path.Clean(ToSlash(p))
	for {
		switch {
		case p == "..":
			return "."
		case strings.HasPrefix(p, "../"):
			p = p[len("../"):]
		case strings.HasPrefix(p, "/"):
			p = strings.TrimLeft(p, "/")
		default:
			if p == "" {
				return "."
			}
			return p
		}
	}
}

// IsWithin reports whether dir is root or a descendant of root.
func IsWithin(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// RelativeTo returns target relative to base as a sanitized forward-slash path.
func RelativeTo(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		rel = filepath.Base(target)
	}
	return SanitizeRelative(rel)
}

// VendorRelative returns the part of p after the last vendor directory segment.
// It reports false when p contains no vendor segment.
func VendorRelative(p string) (string, bool) {
	s := ToSlash(p)
	i := strings.LastIndex(s, vendorAnchor)
	if i < 0 {
		if strings.HasPrefix(s, domain.VendorDirName+"/") {
			return s[len(domain.VendorDirName)+1:], true
		}
		return "", false
	}
	rest := s[i+len(vendorAnchor):]
	if rest == "" {
		return "", false
	}
	return rest, true
}

// IsVendorPath reports whether p lies inside a vendored package directory.
func IsVendorPath(p string) bool {
	_, ok := VendorRelative(p)
	return ok
}

// PackageRoot returns the package directory enclosing p and the package name,
// bounded by the last vendor directory segment. Scoped names keep their scope.
func PackageRoot(p string) (dir, name string, ok bool) {
	s := ToSlash(p)
	rel, ok := VendorRelative(s)
	if !ok {
		return "", "", false
	}
	name = PackageName(rel)
	if name == "" {
		return "", "", false
	}
	prefix := strings.TrimSuffix(s, rel)
	return filepath.FromSlash(prefix + name), name, true
}

// PackageName returns the package name a bare request or vendor-relative path starts with.
// "@scope/pkg/lib/a.js" yields "@scope/pkg"; "lodash/get" yields "lodash".
func PackageName(request string) string {
	parts := strings.SplitN(request, "/", 3)
	if strings.HasPrefix(request, "@") {
		if len(parts) < 2 || parts[1] == "" {
			return ""
		}
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// SubPath returns the part of a bare request after its package name, or "".
func SubPath(request string) string {
	name := PackageName(request)
	return strings.TrimPrefix(strings.TrimPrefix(request, name), "/")
}

// IsRelativeRequest reports whether request is relative to the requesting file.
func IsRelativeRequest(request string) bool {
	return request == "." || request == ".." ||
		strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../")
}

// IsBareRequest reports whether request names a package rather than a path.
func IsBareRequest(request string) bool {
	return request != "" && !IsRelativeRequest(request) && !filepath.IsAbs(request) && !strings.HasPrefix(request, "/")
}

// QuoteLiteral renders s as a single-quoted script string literal.
func QuoteLiteral(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}
