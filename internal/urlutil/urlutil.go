// Package urlutil turns the repository entries of a configuration file into
// repository keys.
//
// A repository entry may be a relative path or a git remote URL in one of three forms:
//   - HTTPS: https://github.com/owner/repo(.git)
//   - SSH colon: git@github.com:owner/repo(.git)
//   - SSH protocol: ssh://git@github.com/owner/repo(.git)
package urlutil

import "strings"

// RepoPath normalizes a repository entry. Remote URLs are reduced to their
// last path component; plain entries keep their relative path so that GitLab
// subgroup paths survive. Trailing slashes and the .git suffix are removed.
//
//	RepoPath("tools") → "tools"
//	RepoPath("sub/tools") → "sub/tools"
//	RepoPath("git@github.com:org/tools.git") → "tools"
//	RepoPath("https://gitlab.com/group/sub/tools/") → "tools"
func RepoPath(entry string) string {
	entry = strings.TrimSpace(entry)
	entry = strings.TrimSuffix(entry, "/")
	entry = strings.TrimSuffix(entry, ".git")
	if isRemoteURL(entry) {
		if idx := strings.LastIndexAny(entry, "/:"); idx >= 0 {
			return entry[idx+1:]
		}
	}
	return strings.Trim(entry, "/")
}

// RepoKey joins a namespace and a repository entry into "namespace/path".
// An entry already under the namespace is not prefixed twice, and with an
// empty namespace the normalized path is returned.
func RepoKey(namespace, entry string) string {
	path := RepoPath(entry)
	namespace = strings.Trim(strings.TrimSpace(namespace), "/")
	if namespace == "" || path == namespace || strings.HasPrefix(path, namespace+"/") {
		return path
	}
	return namespace + "/" + path
}

func isRemoteURL(entry string) bool {
	return strings.Contains(entry, "://") || strings.HasPrefix(entry, "git@")
}

// SplitRepoKey splits "owner/repo" into its parts. Nested groups keep every
// component but the last in owner.
func SplitRepoKey(key string) (owner, repo string, ok bool) {
	idx := strings.LastIndex(key, "/")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}

// JoinURL joins a base URL and a path with exactly one slash between them.
func JoinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
