package url

// Position names a boundary between URL components, for use with Slice.
//
//	scheme ":" [ "//" [ username [ ":" password ]? "@" ]? host [ ":" port ]? ]
//	path [ "?" query ]? [ "#" fragment ]?
//
// A missing component has equal start and end positions, placed where it
// would appear, so component order is preserved. Delimiters lie between the
// end of one component and the start of the next; a path's leading '/' is
// part of the path.
type Position uint8

const (
	SchemeStart Position = iota
	SchemeEnd
	UsernameStart
	UsernameEnd
	PasswordStart
	PasswordEnd
	HostStart
	HostEnd
	PortStart
	PortEnd
	PathStart
	PathEnd
	QueryStart
	QueryEnd
	FragmentStart
	FragmentEnd
)

// Slice returns the serialization between two positions, for example
// u.Slice(UsernameStart, PortEnd) for the authority or
// u.Slice(PathStart, QueryEnd) for a data: URL payload. It panics if from
// lies after to.
func (u *URL) Slice(from, to Position) string {
	return u.serialization[u.index(from):u.index(to)]
}

func (u *URL) hasPassword() bool {
	return u.hostKind != HostNone && u.usernameEnd < u.hostStart && u.serialization[u.usernameEnd] == ':'
}

func (u *URL) index(p Position) int {
	switch p {
	case SchemeStart:
		return 0
	case SchemeEnd:
		return u.schemeEnd
	case UsernameStart:
		if u.hostKind == HostNone {
			return u.schemeEnd + len(":")
		}
		return u.schemeEnd + len("://")
	case UsernameEnd:
		return u.usernameEnd
	case PasswordStart:
		if u.hasPassword() {
			return u.usernameEnd + len(":")
		}
		return u.usernameEnd
	case PasswordEnd:
		if u.hasPassword() {
			return u.hostStart - len("@")
		}
		return u.usernameEnd
	case HostStart:
		return u.hostStart
	case HostEnd:
		return u.hostEnd
	case PortStart:
		if u.hasPort {
			return u.hostEnd + len(":")
		}
		return u.hostEnd
	case PortEnd:
		// Without a host, "/." may separate the empty authority from the path.
		if u.hostKind == HostNone {
			return u.hostEnd
		}
		return u.pathStart
	case PathStart:
		return u.pathStart
	case PathEnd:
		return u.pathEnd()
	case QueryStart:
		if u.queryStart >= 0 {
			return u.queryStart + len("?")
		}
		return u.pathEnd()
	case QueryEnd:
		if u.fragmentStart >= 0 {
			return u.fragmentStart
		}
		return len(u.serialization)
	case FragmentStart:
		if u.fragmentStart >= 0 {
			return u.fragmentStart + len("#")
		}
		return len(u.serialization)
	case FragmentEnd:
		return len(u.serialization)
	}
	panic("url: invalid Position")
}
