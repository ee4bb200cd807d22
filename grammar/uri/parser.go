package uri

import (
	"fmt"
	"net/netip"

	"github.com/dhamidi/comb/element"
	"github.com/dhamidi/comb/parse"
)

var (
	alnum      = element.Func[rune](element.IsAlphanumeric[rune])
	unreserved = element.Union[rune](alnum, element.Chars[rune]("-._~"))
	subDelims  = element.Chars[rune]("!$&'()*+,;=")
	pchar      = element.Union[rune](unreserved, subDelims, element.Chars[rune](":@"))
	// Query keys stop at '=' and both key and value stop at '&'.
	keyChars   = element.Union[rune](unreserved, element.Chars[rune]("!$'()*+,;:@/?"))
	valueChars = element.Union[rune](keyChars, element.Chars[rune]("="))
)

func pctEncoded() parse.Parser[rune, string] {
	hex := parse.ElemMatching(element.IsHexDigit[rune])
	return parse.Text(parse.And(parse.Elem('%'), parse.Count(hex, 2))).Name("percent-encoding")
}

// span matches any run of set members and percent-encoded octets.
func span(set element.Set[rune]) parse.Parser[rune, string] {
	return parse.Text(parse.Many0(parse.Or(
		parse.Discard(parse.TakeWhile1(set.Contains)),
		parse.Discard(pctEncoded()),
	)))
}

func decOctet() parse.Parser[rune, uint8] {
	text := parse.Text(parse.ManyNM(parse.ElemMatching(element.IsDigit[rune]), 1, 3))
	canonical := parse.Filter(text, func(s string) bool { return len(s) == 1 || s[0] != '0' })
	return parse.Convert(canonical, parse.ParseInteger[uint8])
}

var ipv4 = func() parse.Parser[rune, []uint8] {
	dot := parse.Elem('.')
	return parse.SkipRight(parse.Seq(
		decOctet(),
		parse.SkipLeft(dot, decOctet()),
		parse.SkipLeft(dot, decOctet()),
		parse.SkipLeft(dot, decOctet()),
	), parse.End[rune]())
}()

func checkIPv6(s string) (string, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return "", err
	}
	if !addr.Is6() || addr.Zone() != "" {
		return "", fmt.Errorf("%q is not an IPv6 address", s)
	}
	return s, nil
}

func host() parse.Parser[rune, Host] {
	ipv6 := parse.Map(
		parse.Convert(parse.Text(parse.TakeWhile1(func(c rune) bool {
			return element.IsHexDigit(c) || c == ':' || c == '.'
		})), checkIPv6),
		func(s string) Host { return Host{Kind: IPv6, Name: s} },
	)
	future := parse.Map(
		parse.Text(parse.Seq(
			parse.Collect(parse.Elem('v')),
			parse.TakeWhile1(element.IsHexDigit[rune]),
			parse.Collect(parse.Elem('.')),
			parse.TakeWhile1(element.Union[rune](unreserved, subDelims, element.Chars[rune](":")).Contains),
		)),
		func(s string) Host { return Host{Kind: IPvFuture, Name: s} },
	)
	literal := parse.Surround(parse.Elem('['), parse.Or(ipv6, future), parse.Elem(']')).Name("ip literal")

	named := parse.Map(span(element.Union[rune](unreserved, subDelims)), func(s string) Host {
		if _, err := parse.Run(ipv4, []rune(s)); err == nil {
			return Host{Kind: IPv4, Name: s}
		}
		return Host{Kind: RegName, Name: s}
	})
	return parse.Or(literal, named).Name("host")
}

func authority() parse.Parser[rune, Authority] {
	userChars := element.Union[rune](unreserved, subDelims)
	userinfo := parse.Map(
		parse.And(span(userChars), parse.Opt(parse.SkipLeft(parse.Elem(':'), span(element.Union[rune](userChars, element.Chars[rune](":")))))),
		func(p parse.Pair[string, parse.Option[string]]) UserInfo {
			u := UserInfo{User: p.First}
			if p.Second.Ok {
				u.Password = &p.Second.Value
			}
			return u
		},
	)
	// Userinfo and host share most of their alphabet, so only the '@'
	// decides whether the prefix was userinfo.
	user := parse.Opt(parse.Attempt(parse.SkipRight(userinfo, parse.Elem('@'))))
	port := parse.Opt(parse.SkipLeft(parse.Elem(':'), parse.Text(parse.TakeWhile0(element.IsDigit[rune]))))

	return parse.Map(
		parse.And(parse.And(user, host()), port),
		func(p parse.Pair[parse.Pair[parse.Option[UserInfo], Host], parse.Option[string]]) Authority {
			a := Authority{Host: p.First.Second}
			if p.First.First.Ok {
				a.UserInfo = &p.First.First.Value
			}
			if p.Second.Ok {
				a.Port = &p.Second.Value
			}
			return a
		},
	).Name("authority")
}

type hier struct {
	authority *Authority
	path      string
}

func hierPart() parse.Parser[rune, hier] {
	slash := parse.Elem('/')
	segment := span(pchar)
	segmentNz := parse.Filter(segment, func(s string) bool { return s != "" }).Name("segment")
	abempty := parse.Text(parse.Many0(parse.And(slash, segment)))
	absolute := parse.Text(parse.And(slash, parse.Opt(parse.And(segmentNz, abempty))))
	rootless := parse.Text(parse.And(segmentNz, abempty))

	withAuthority := parse.Map(
		parse.SkipLeft(parse.Tag('/', '/'), parse.And(authority(), abempty)),
		func(p parse.Pair[Authority, string]) hier { return hier{authority: &p.First, path: p.Second} },
	)
	withoutAuthority := parse.Map(
		parse.Or(absolute, rootless, parse.Pure[rune]("")),
		func(path string) hier { return hier{path: path} },
	)
	return parse.Or(withAuthority, withoutAuthority)
}

func query() parse.Parser[rune, Query] {
	param := parse.Map(
		parse.And(span(keyChars), parse.Opt(parse.SkipLeft(parse.Elem('='), span(valueChars)))),
		func(p parse.Pair[string, parse.Option[string]]) Param {
			q := Param{Key: p.First}
			if p.Second.Ok {
				q.Value = &p.Second.Value
			}
			return q
		},
	)
	return parse.Map(
		parse.SkipLeft(parse.Elem('?'), parse.Many0Sep(param, parse.Elem('&'))),
		func(ps []Param) Query { return Query{Params: ps} },
	).Name("query")
}

// Parser returns the grammar of an absolute URI, fragment allowed.
func Parser() parse.Parser[rune, URI] {
	scheme := parse.Text(parse.And(
		parse.ElemMatching(element.IsAlpha[rune]),
		parse.TakeWhile0(element.Union[rune](alnum, element.Chars[rune]("+-.")).Contains),
	)).Name("scheme")
	fragment := parse.SkipLeft(parse.Elem('#'), span(element.Union[rune](pchar, element.Chars[rune]("/?")))).Name("fragment")

	uri := parse.Map(
		parse.And(
			parse.And(parse.SkipRight(scheme, parse.Elem(':')), hierPart()),
			parse.And(parse.Opt(query()), parse.Opt(fragment)),
		),
		func(p parse.Pair[parse.Pair[string, hier], parse.Pair[parse.Option[Query], parse.Option[string]]]) URI {
			u := URI{Scheme: p.First.First, Authority: p.First.Second.authority, Path: p.First.Second.path}
			if q := p.Second.First; q.Ok {
				u.Query = &q.Value
			}
			if f := p.Second.Second; f.Ok {
				u.Fragment = &f.Value
			}
			return u
		},
	)
	return parse.SkipRight(uri, parse.End[rune]()).Name("uri")
}

var parser = Parser()

// Parse parses an absolute URI.
func Parse(s string) (URI, error) {
	u, err := parse.Run(parser, []rune(s))
	if err != nil {
		return URI{}, fmt.Errorf("parse uri %q: %w", s, err)
	}
	return u, nil
}

// MustParse is Parse that panics on error.
func MustParse(s string) URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}
