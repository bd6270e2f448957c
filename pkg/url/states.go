package url

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/shapestone/shape-url/internal/percent"
)

const eof = -1

// state is a state of the basic URL parser. stateNone doubles as "no state
// override".
type state uint8

const (
	stateNone state = iota
	stateSchemeStart
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	stateHostname
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

// action tells the driver loop what to do after a state ran.
type action uint8

const (
	actContinue action = iota // advance the pointer, keep going
	actReturn                 // stop; the record holds the result
	actReject                 // stop; a state override made no change
	actFail                   // stop; m.err holds the cause
)

// machine holds the basic URL parser's working variables.
type machine struct {
	input    []rune
	pointer  int
	url      *record
	base     *record
	override state
	encoding encoding.Encoding
	report   func(ValidationKind, int)
	err      error

	buf               []byte
	user, pass        []byte // userinfo collected by the authority state
	atSignSeen        bool
	insideBrackets    bool
	passwordTokenSeen bool
}

func (m *machine) at(i int) rune {
	if i >= 0 && i < len(m.input) {
		return m.input[i]
	}
	return eof
}

// remainingStartsWith reports whether the code points after the pointer
// begin with s (ASCII only).
func (m *machine) remainingStartsWith(s string) bool {
	for i := 0; i < len(s); i++ {
		if m.at(m.pointer+1+i) != rune(s[i]) {
			return false
		}
	}
	return true
}

func (m *machine) validation(k ValidationKind) {
	if m.report != nil {
		m.report(k, m.pointer)
	}
}

func (m *machine) hostReport() reportFunc {
	if m.report == nil {
		return nil
	}
	return func(k ValidationKind) { m.report(k, m.pointer) }
}

func (m *machine) fail(err error) (state, action) {
	m.err = err
	return stateNone, actFail
}

// checkCodePoint reports non-URL code points and stray '%' signs.
func (m *machine) checkCodePoint(c rune) {
	if m.report == nil {
		return
	}
	if c == '%' {
		if !isASCIIHexDigit(m.at(m.pointer+1)) || !isASCIIHexDigit(m.at(m.pointer+2)) {
			m.validation(ValidationInvalidPercentEncoding)
		}
		return
	}
	if !isURLCodePoint(c) {
		m.validation(ValidationInvalidURLUnit)
	}
}

// run drives the state machine from st until the input is exhausted or a
// state stops it.
func (m *machine) run(st state) error {
	for {
		next, act := m.step(st, m.at(m.pointer))
		switch act {
		case actReturn:
			return nil
		case actReject:
			return ErrRejected
		case actFail:
			return m.err
		}
		st = next
		if m.pointer >= len(m.input) {
			return nil
		}
		m.pointer++
	}
}

func (m *machine) step(st state, c rune) (state, action) {
	switch st {
	case stateSchemeStart:
		return m.schemeStart(c)
	case stateScheme:
		return m.scheme(c)
	case stateNoScheme:
		return m.noScheme(c)
	case stateSpecialRelativeOrAuthority:
		return m.specialRelativeOrAuthority(c)
	case statePathOrAuthority:
		return m.pathOrAuthority(c)
	case stateRelative:
		return m.relative(c)
	case stateRelativeSlash:
		return m.relativeSlash(c)
	case stateSpecialAuthoritySlashes:
		return m.specialAuthoritySlashes(c)
	case stateSpecialAuthorityIgnoreSlashes:
		return m.specialAuthorityIgnoreSlashes(c)
	case stateAuthority:
		return m.authority(c)
	case stateHost, stateHostname:
		return m.host(st, c)
	case statePort:
		return m.port(c)
	case stateFile:
		return m.file(c)
	case stateFileSlash:
		return m.fileSlash(c)
	case stateFileHost:
		return m.fileHost(c)
	case statePathStart:
		return m.pathStart(c)
	case statePath:
		return m.path(c)
	case stateOpaquePath:
		return m.opaquePath(c)
	case stateQuery:
		return m.query(c)
	case stateFragment:
		return m.fragment(c)
	}
	panic("url: unknown parser state " + strconv.Itoa(int(st)))
}

func asciiLower(c rune) byte {
	if 'A' <= c && c <= 'Z' {
		return byte(c + 'a' - 'A')
	}
	return byte(c)
}

func (m *machine) schemeStart(c rune) (state, action) {
	switch {
	case isASCIIAlpha(c):
		m.buf = append(m.buf, asciiLower(c))
		return stateScheme, actContinue
	case m.override == stateNone:
		m.pointer--
		return stateNoScheme, actContinue
	default:
		return m.fail(ErrInvalidScheme)
	}
}

func (m *machine) scheme(c rune) (state, action) {
	if isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.' {
		m.buf = append(m.buf, asciiLower(c))
		return stateScheme, actContinue
	}
	if c != ':' {
		if m.override == stateNone {
			m.buf = m.buf[:0]
			m.pointer = -1
			return stateNoScheme, actContinue
		}
		return m.fail(ErrInvalidScheme)
	}

	scheme := internScheme(m.buf)
	if m.override != stateNone {
		if m.url.isSpecial() != IsSpecialScheme(scheme) {
			return stateNone, actReject
		}
		if (m.url.hasCredentials() || m.url.port >= 0) && scheme == "file" {
			return stateNone, actReject
		}
		if m.url.scheme == "file" && m.url.host.Kind == HostEmpty {
			return stateNone, actReject
		}
	}
	m.url.scheme = scheme
	if m.override != stateNone {
		if m.url.port >= 0 && m.url.port == defaultPort(scheme) {
			m.url.port = -1
		}
		return stateNone, actReturn
	}
	m.buf = m.buf[:0]

	switch {
	case scheme == "file":
		if !m.remainingStartsWith("//") {
			m.validation(ValidationSpecialSchemeMissingFollowingSolidus)
		}
		return stateFile, actContinue
	case m.url.isSpecial() && m.base != nil && m.base.scheme == scheme:
		return stateSpecialRelativeOrAuthority, actContinue
	case m.url.isSpecial():
		return stateSpecialAuthoritySlashes, actContinue
	case m.remainingStartsWith("/"):
		m.pointer++
		return statePathOrAuthority, actContinue
	default:
		m.url.opaque = true
		m.url.opaquePath = ""
		m.url.path = nil
		return stateOpaquePath, actContinue
	}
}

func (m *machine) noScheme(c rune) (state, action) {
	switch {
	case m.base == nil || (m.base.opaque && c != '#'):
		m.validation(ValidationMissingSchemeNonRelativeURL)
		return m.fail(ErrRelativeWithoutBase)
	case m.base.opaque:
		m.url.scheme = m.base.scheme
		m.url.opaque = true
		m.url.opaquePath = m.base.opaquePath
		m.url.query, m.url.hasQuery = m.base.query, m.base.hasQuery
		m.url.fragment, m.url.hasFragment = "", true
		return stateFragment, actContinue
	case m.base.scheme != "file":
		m.pointer--
		return stateRelative, actContinue
	default:
		m.pointer--
		return stateFile, actContinue
	}
}

func (m *machine) specialRelativeOrAuthority(c rune) (state, action) {
	if c == '/' && m.remainingStartsWith("/") {
		m.pointer++
		return stateSpecialAuthorityIgnoreSlashes, actContinue
	}
	m.validation(ValidationSpecialSchemeMissingFollowingSolidus)
	m.pointer--
	return stateRelative, actContinue
}

func (m *machine) pathOrAuthority(c rune) (state, action) {
	if c == '/' {
		return stateAuthority, actContinue
	}
	m.pointer--
	return statePath, actContinue
}

// copyBaseAuthority copies credentials, host and port from the base.
func (m *machine) copyBaseAuthority() {
	m.url.username = m.base.username
	m.url.password = m.base.password
	m.url.host = m.base.host
	m.url.port = m.base.port
}

func (m *machine) relative(c rune) (state, action) {
	m.url.scheme = m.base.scheme
	if c == '/' {
		return stateRelativeSlash, actContinue
	}
	if m.url.isSpecial() && c == '\\' {
		m.validation(ValidationInvalidReverseSolidus)
		return stateRelativeSlash, actContinue
	}

	m.copyBaseAuthority()
	m.url.path = m.base.clonePath()
	m.url.query, m.url.hasQuery = m.base.query, m.base.hasQuery
	switch c {
	case '?':
		m.url.query, m.url.hasQuery = "", true
		return stateQuery, actContinue
	case '#':
		m.url.fragment, m.url.hasFragment = "", true
		return stateFragment, actContinue
	case eof:
		return stateRelative, actContinue
	}
	m.url.query, m.url.hasQuery = "", false
	m.url.shortenPath()
	m.pointer--
	return statePath, actContinue
}

func (m *machine) relativeSlash(c rune) (state, action) {
	if m.url.isSpecial() && (c == '/' || c == '\\') {
		if c == '\\' {
			m.validation(ValidationInvalidReverseSolidus)
		}
		return stateSpecialAuthorityIgnoreSlashes, actContinue
	}
	if c == '/' {
		return stateAuthority, actContinue
	}
	m.copyBaseAuthority()
	m.pointer--
	return statePath, actContinue
}

func (m *machine) specialAuthoritySlashes(c rune) (state, action) {
	if c == '/' && m.remainingStartsWith("/") {
		m.pointer++
		return stateSpecialAuthorityIgnoreSlashes, actContinue
	}
	m.validation(ValidationSpecialSchemeMissingFollowingSolidus)
	m.pointer--
	return stateSpecialAuthorityIgnoreSlashes, actContinue
}

func (m *machine) specialAuthorityIgnoreSlashes(c rune) (state, action) {
	if c != '/' && c != '\\' {
		m.pointer--
		return stateAuthority, actContinue
	}
	m.validation(ValidationSpecialSchemeMissingFollowingSolidus)
	return stateSpecialAuthorityIgnoreSlashes, actContinue
}

func (m *machine) authority(c rune) (state, action) {
	if c == '@' {
		m.validation(ValidationInvalidCredentials)
		if m.atSignSeen {
			m.buf = append([]byte("%40"), m.buf...)
		}
		m.atSignSeen = true
		for _, r := range string(m.buf) {
			if r == ':' && !m.passwordTokenSeen {
				m.passwordTokenSeen = true
				continue
			}
			if m.passwordTokenSeen {
				m.pass = percent.AppendRune(m.pass, r, &percent.Userinfo)
			} else {
				m.user = percent.AppendRune(m.user, r, &percent.Userinfo)
			}
		}
		if m.passwordTokenSeen && len(m.pass) == 0 {
			m.validation(ValidationEmptyPassword)
		}
		m.buf = m.buf[:0]
		return stateAuthority, actContinue
	}
	if c == eof || c == '/' || c == '?' || c == '#' || (c == '\\' && m.url.isSpecial()) {
		if m.atSignSeen && len(m.buf) == 0 {
			m.validation(ValidationHostMissing)
			return m.fail(ErrEmptyHost)
		}
		// Userinfo is converted once, when the authority ends.
		m.url.username, m.url.password = string(m.user), string(m.pass)
		m.pointer -= utf8.RuneCount(m.buf) + 1
		m.buf = m.buf[:0]
		return stateHost, actContinue
	}
	m.buf = utf8.AppendRune(m.buf, c)
	return stateAuthority, actContinue
}

func (m *machine) host(st state, c rune) (state, action) {
	if m.override != stateNone && m.url.scheme == "file" {
		m.pointer--
		return stateFileHost, actContinue
	}
	special := m.url.isSpecial()
	if c == ':' && !m.insideBrackets {
		if len(m.buf) == 0 {
			m.validation(ValidationHostMissing)
			return m.fail(ErrEmptyHost)
		}
		if m.override == stateHostname {
			return stateNone, actReject
		}
		h, err := parseHost(string(m.buf), !special, m.hostReport())
		if err != nil {
			return m.fail(err)
		}
		m.url.host = h
		m.buf = m.buf[:0]
		return statePort, actContinue
	}
	if c == eof || c == '/' || c == '?' || c == '#' || (c == '\\' && special) {
		m.pointer--
		if special && len(m.buf) == 0 {
			m.validation(ValidationHostMissing)
			return m.fail(ErrEmptyHost)
		}
		if m.override != stateNone && len(m.buf) == 0 && (m.url.hasCredentials() || m.url.port >= 0) {
			return stateNone, actReject
		}
		h, err := parseHost(string(m.buf), !special, m.hostReport())
		if err != nil {
			return m.fail(err)
		}
		m.url.host = h
		m.buf = m.buf[:0]
		if m.override != stateNone {
			return stateNone, actReturn
		}
		return statePathStart, actContinue
	}
	switch c {
	case '[':
		m.insideBrackets = true
	case ']':
		m.insideBrackets = false
	}
	m.buf = utf8.AppendRune(m.buf, c)
	return st, actContinue
}

func (m *machine) port(c rune) (state, action) {
	if isASCIIDigit(c) {
		m.buf = append(m.buf, byte(c))
		return statePort, actContinue
	}
	if c == eof || c == '/' || c == '?' || c == '#' || (c == '\\' && m.url.isSpecial()) || m.override != stateNone {
		if len(m.buf) != 0 {
			port := 0
			for _, d := range m.buf {
				port = port*10 + int(d-'0')
				if port > 65535 {
					m.validation(ValidationPortOutOfRange)
					return m.fail(ErrInvalidPort)
				}
			}
			if port == defaultPort(m.url.scheme) {
				m.validation(ValidationRedundantDefaultPort)
				m.url.port = -1
			} else {
				m.url.port = port
			}
			m.buf = m.buf[:0]
			if m.override != stateNone {
				return stateNone, actReturn
			}
		}
		if m.override == statePort {
			return m.fail(ErrInvalidPort)
		}
		if m.override != stateNone {
			return stateNone, actReturn
		}
		m.pointer--
		return statePathStart, actContinue
	}
	m.validation(ValidationPortInvalid)
	return m.fail(ErrInvalidPort)
}

func (m *machine) file(c rune) (state, action) {
	m.url.scheme = "file"
	m.url.host = Host{Kind: HostEmpty}
	if c == '/' || c == '\\' {
		if c == '\\' {
			m.validation(ValidationInvalidReverseSolidus)
		}
		return stateFileSlash, actContinue
	}
	if m.base != nil && m.base.scheme == "file" {
		m.url.host = m.base.host
		m.url.path = m.base.clonePath()
		m.url.query, m.url.hasQuery = m.base.query, m.base.hasQuery
		switch c {
		case '?':
			m.url.query, m.url.hasQuery = "", true
			return stateQuery, actContinue
		case '#':
			m.url.fragment, m.url.hasFragment = "", true
			return stateFragment, actContinue
		case eof:
			return stateFile, actContinue
		}
		m.url.query, m.url.hasQuery = "", false
		if !startsWithWindowsDriveLetter(m.input[m.pointer:]) {
			m.url.shortenPath()
		} else {
			m.validation(ValidationFileInvalidWindowsDriveLetter)
			m.url.path = nil
		}
	}
	m.pointer--
	return statePath, actContinue
}

func (m *machine) fileSlash(c rune) (state, action) {
	if c == '/' || c == '\\' {
		if c == '\\' {
			m.validation(ValidationInvalidReverseSolidus)
		}
		return stateFileHost, actContinue
	}
	if m.base != nil && m.base.scheme == "file" {
		m.url.host = m.base.host
		if !startsWithWindowsDriveLetter(m.input[m.pointer:]) &&
			len(m.base.path) > 0 && isNormalizedWindowsDriveLetter(m.base.path[0]) {
			m.url.path = append(m.url.path, m.base.path[0])
		}
	}
	m.pointer--
	return statePath, actContinue
}

func (m *machine) fileHost(c rune) (state, action) {
	if c != eof && c != '/' && c != '\\' && c != '?' && c != '#' {
		m.buf = utf8.AppendRune(m.buf, c)
		return stateFileHost, actContinue
	}
	m.pointer--
	if m.override == stateNone && isWindowsDriveLetter(string(m.buf)) {
		// The buffer is kept and becomes the first path segment.
		m.validation(ValidationFileInvalidWindowsDriveLetterHost)
		return statePath, actContinue
	}
	if len(m.buf) == 0 {
		m.url.host = Host{Kind: HostEmpty}
		if m.override != stateNone {
			return stateNone, actReturn
		}
		return statePathStart, actContinue
	}
	h, err := parseHost(string(m.buf), !m.url.isSpecial(), m.hostReport())
	if err != nil {
		return m.fail(err)
	}
	if h.Kind == HostDomain && h.Name == "localhost" {
		h = Host{Kind: HostEmpty}
	}
	m.url.host = h
	if m.override != stateNone {
		return stateNone, actReturn
	}
	m.buf = m.buf[:0]
	return statePathStart, actContinue
}

func (m *machine) pathStart(c rune) (state, action) {
	switch {
	case m.url.isSpecial():
		if c == '\\' {
			m.validation(ValidationInvalidReverseSolidus)
		}
		if c != '/' && c != '\\' {
			m.pointer--
		}
		return statePath, actContinue
	case m.override == stateNone && c == '?':
		m.url.query, m.url.hasQuery = "", true
		return stateQuery, actContinue
	case m.override == stateNone && c == '#':
		m.url.fragment, m.url.hasFragment = "", true
		return stateFragment, actContinue
	case c != eof:
		if c != '/' {
			m.pointer--
		}
		return statePath, actContinue
	case m.override != stateNone && m.url.host.Kind == HostNone:
		m.url.path = append(m.url.path, "")
	}
	return statePathStart, actContinue
}

func (m *machine) path(c rune) (state, action) {
	special := m.url.isSpecial()
	slash := c == '/' || (special && c == '\\')
	if c == eof || slash || (m.override == stateNone && (c == '?' || c == '#')) {
		if special && c == '\\' {
			m.validation(ValidationInvalidReverseSolidus)
		}
		seg := string(m.buf)
		switch {
		case isDoubleDotSegment(seg):
			m.url.shortenPath()
			if !slash {
				m.url.path = append(m.url.path, "")
			}
		case isSingleDotSegment(seg):
			if !slash {
				m.url.path = append(m.url.path, "")
			}
		default:
			if m.url.scheme == "file" && len(m.url.path) == 0 && isWindowsDriveLetter(seg) {
				seg = seg[:1] + ":"
			}
			m.url.path = append(m.url.path, seg)
		}
		m.buf = m.buf[:0]
		switch c {
		case '?':
			m.url.query, m.url.hasQuery = "", true
			return stateQuery, actContinue
		case '#':
			m.url.fragment, m.url.hasFragment = "", true
			return stateFragment, actContinue
		}
		return statePath, actContinue
	}
	m.checkCodePoint(c)
	m.buf = percent.AppendRune(m.buf, c, &percent.Path)
	return statePath, actContinue
}

func (m *machine) opaquePath(c rune) (state, action) {
	switch c {
	case '?', '#', eof:
		m.url.opaquePath += string(m.buf)
		m.buf = m.buf[:0]
		if c == '?' {
			m.url.query, m.url.hasQuery = "", true
			return stateQuery, actContinue
		}
		if c == '#' {
			m.url.fragment, m.url.hasFragment = "", true
			return stateFragment, actContinue
		}
	case ' ':
		// A space right before the query or fragment would become trailing
		// once they are removed, so it is escaped.
		if next := m.at(m.pointer + 1); next == '?' || next == '#' {
			m.buf = append(m.buf, "%20"...)
		} else {
			m.buf = append(m.buf, ' ')
		}
	default:
		m.checkCodePoint(c)
		m.buf = percent.AppendRune(m.buf, c, &percent.C0Control)
	}
	return stateOpaquePath, actContinue
}

func (m *machine) query(c rune) (state, action) {
	if c != eof && (m.override != stateNone || c != '#') {
		m.checkCodePoint(c)
		m.buf = utf8.AppendRune(m.buf, c)
		return stateQuery, actContinue
	}
	set := &percent.Query
	if m.url.isSpecial() {
		set = &percent.SpecialQuery
	}
	m.url.query = string(percent.AppendBytes([]byte(m.url.query), m.encodeQuery(m.buf), set, false))
	m.buf = m.buf[:0]
	if c == '#' {
		m.url.fragment, m.url.hasFragment = "", true
		return stateFragment, actContinue
	}
	return stateQuery, actContinue
}

// encodeQuery applies the query encoding override, which only special
// schemes other than ws and wss honor. Unmappable runes become "&#N;".
func (m *machine) encodeQuery(b []byte) []byte {
	if m.encoding == nil || !m.url.isSpecial() || m.url.scheme == "ws" || m.url.scheme == "wss" {
		return b
	}
	out, err := encoding.HTMLEscapeUnsupported(m.encoding.NewEncoder()).Bytes(b)
	if err != nil {
		return b
	}
	return out
}

func (m *machine) fragment(c rune) (state, action) {
	if c != eof {
		m.checkCodePoint(c)
		m.buf = percent.AppendRune(m.buf, c, &percent.Fragment)
		return stateFragment, actContinue
	}
	m.url.fragment += string(m.buf)
	m.buf = m.buf[:0]
	return stateFragment, actContinue
}

func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

func isNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && s[1] == ':'
}

func startsWithWindowsDriveLetter(rs []rune) bool {
	if len(rs) < 2 || !isASCIIAlpha(rs[0]) || (rs[1] != ':' && rs[1] != '|') {
		return false
	}
	if len(rs) == 2 {
		return true
	}
	switch rs[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

func isSingleDotSegment(s string) bool {
	return s == "." || strings.EqualFold(s, "%2e")
}

func isDoubleDotSegment(s string) bool {
	switch strings.ToLower(s) {
	case "..", ".%2e", "%2e.", "%2e%2e":
		return true
	}
	return false
}
