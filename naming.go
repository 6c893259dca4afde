package haveup

import (
	"crypto/sha1" //#nosec G505 -- used for collision-avoiding names, not security
	"encoding/hex"
	"path/filepath"
	"strings"
)

// TargetName returns the remote file name for localPath.
//
// When hash is false the basename is returned unchanged. When hash is true the
// name is the lowercase hex SHA-1 of the basename string followed by the
// basename's suffix (everything from the last "." inclusive, or nothing when
// the basename has no dot). The file contents are never read.
func TargetName(localPath string, hash bool) string {
	base := filepath.Base(localPath)
	if !hash {
		return base
	}

	sum := sha1.Sum([]byte(base)) //#nosec G401
	return hex.EncodeToString(sum[:]) + suffix(base)
}

func suffix(base string) string {
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return base[i:]
}

// joinLocation builds "{prefix}[/{subdir}]/{name}".
func joinLocation(prefix, subdir, name string) string {
	prefix = strings.TrimRight(prefix, "/")
	if subdir != "" {
		prefix += "/" + subdir
	}
	return prefix + "/" + name
}
