// Package uri parses generic URIs as described by RFC 3986.
//
// Components keep their percent-encoding exactly as written, so String
// reproduces the parsed text. Use Unescape to decode a component.
package uri

import (
	"net/url"
	"strings"
)

// HostKind tells which production a host matched.
type HostKind int

const (
	RegName HostKind = iota
	IPv4
	IPv6
	IPvFuture
)

func (k HostKind) String() string {
	switch k {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	case IPvFuture:
		return "ipvfuture"
	}
	return "reg-name"
}

func (k HostKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Host is the host of an authority. Name holds an IP literal without its
// brackets.
type Host struct {
	Kind HostKind
	Name string
}

func (h Host) String() string {
	if h.Kind == IPv6 || h.Kind == IPvFuture {
		return "[" + h.Name + "]"
	}
	return h.Name
}

// UserInfo is the part of an authority before '@'.
type UserInfo struct {
	User     string
	Password *string
}

func (u UserInfo) String() string {
	if u.Password == nil {
		return u.User
	}
	return u.User + ":" + *u.Password
}

// Authority is the '//' part of a URI. Port is nil when no ':' follows the
// host and empty when the colon has no digits after it.
type Authority struct {
	UserInfo *UserInfo
	Host     Host
	Port     *string
}

func (a Authority) String() string {
	var b strings.Builder
	if a.UserInfo != nil {
		b.WriteString(a.UserInfo.String())
		b.WriteByte('@')
	}
	b.WriteString(a.Host.String())
	if a.Port != nil {
		b.WriteByte(':')
		b.WriteString(*a.Port)
	}
	return b.String()
}

// Param is one '&' separated element of a query. Value is nil when the
// element has no '='.
type Param struct {
	Key   string
	Value *string
}

// Query is the ordered list of query parameters.
type Query struct {
	Params []Param
}

// Get returns the value of the first parameter named key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q.Params {
		if p.Key == key {
			if p.Value == nil {
				return "", true
			}
			return *p.Value, true
		}
	}
	return "", false
}

func (q Query) String() string {
	var b strings.Builder
	for i, p := range q.Params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		if p.Value != nil {
			b.WriteByte('=')
			b.WriteString(*p.Value)
		}
	}
	return b.String()
}

// URI is a parsed absolute URI.
type URI struct {
	Scheme    string
	Authority *Authority
	Path      string
	Query     *Query
	Fragment  *string
}

func (u URI) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteByte(':')
	if u.Authority != nil {
		b.WriteString("//")
		b.WriteString(u.Authority.String())
	}
	b.WriteString(u.Path)
	if u.Query != nil {
		b.WriteByte('?')
		b.WriteString(u.Query.String())
	}
	if u.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.Fragment)
	}
	return b.String()
}

// Segments splits the path on '/', dropping the leading empty segment of
// an absolute path.
func (u URI) Segments() []string {
	if u.Path == "" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
}

// Unescape decodes the percent-encoded octets of a component.
func Unescape(s string) (string, error) {
	return url.PathUnescape(s)
}
