package domain

import "strings"

// Credentials is the persisted session state. BootID pins the token to
// the backend process that issued it: the server keeps users in memory,
// so a restart invalidates every outstanding token.
type Credentials struct {
	Token  string `json:"token"`
	BootID string `json:"boot_id"`
}

func (c Credentials) HasToken() bool {
	return c.Token != ""
}

// Well-known navigation paths of the client shell.
const (
	PathHome      = "/"
	PathAuth      = "/auth"
	PathUpload    = "/upload"
	PathProfile   = "/profile"
	PathAlgorithm = "/algorithm"
)

type PageKind int

const (
	PageUnknown PageKind = iota
	PagePublic
	PagePrivate
)

func (k PageKind) String() string {
	switch k {
	case PagePublic:
		return "public"
	case PagePrivate:
		return "private"
	default:
		return "unknown"
	}
}

type Page struct {
	Path string
	Kind PageKind
}

var (
	publicPrefixes  = []string{PathAuth}
	privatePrefixes = []string{PathUpload, PathProfile, PathAlgorithm}
)

// ClassifyPage maps a navigation path onto the guard's page model.
// Subpaths inherit the classification of their prefix; the root is
// public on an exact match only.
func ClassifyPage(path string) Page {
	p := normalizePath(path)
	switch {
	case p == PathHome || matchesAny(p, publicPrefixes):
		return Page{Path: p, Kind: PagePublic}
	case matchesAny(p, privatePrefixes):
		return Page{Path: p, Kind: PagePrivate}
	default:
		return Page{Path: p, Kind: PageUnknown}
	}
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return PathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return PathHome
	}
	return path
}

type GuardState int

const (
	// StateNone means the guard has nothing to say about this path.
	StateNone GuardState = iota
	StateShowAuthForms
	StateRedirecting
	StateShowPrivateContent
)

func (s GuardState) String() string {
	switch s {
	case StateShowAuthForms:
		return "show-auth-forms"
	case StateRedirecting:
		return "redirecting"
	case StateShowPrivateContent:
		return "show-private-content"
	default:
		return "none"
	}
}

// Decision is the guard outcome for one navigation. Target is set only
// when State is StateRedirecting.
type Decision struct {
	State  GuardState
	Target Page
}

// Decide evaluates the session guard for a classified page. Unknown
// pages are left alone so paths outside the shell never bounce the
// user around. An invalid token counts the same as no token at all.
func Decide(kind PageKind, hasToken, tokenValid bool) Decision {
	authenticated := hasToken && tokenValid
	switch kind {
	case PagePublic:
		if authenticated {
			return Decision{State: StateRedirecting, Target: ClassifyPage(PathUpload)}
		}
		return Decision{State: StateShowAuthForms}
	case PagePrivate:
		if authenticated {
			return Decision{State: StateShowPrivateContent}
		}
		return Decision{State: StateRedirecting, Target: ClassifyPage(PathAuth)}
	default:
		return Decision{State: StateNone}
	}
}
