package lodestone

import (
	"html"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is prepended to site-relative links.
const DefaultBaseURL = "https://na.finalfantasyxiv.com"

// TooltipAttribute holds tooltip text on Lodestone elements.
const TooltipAttribute = "data-tooltip"

// Parser answers typed questions about a single root node. It holds no state
// besides the borrowed root and its configuration, so every method is a pure
// function of the definition and the tree contents. A Parser is safe for
// concurrent use when the underlying tree is.
//
// Absence (no node, no attribute, empty text) is reported through the ok
// result and never as an error. Errors are reserved for values that are
// present but cannot be interpreted: EFORMAT, EPATTERN and EMALFORMED.
type Parser struct {
	root    Node
	baseURL string
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithBaseURL sets the base URL prepended to site-relative links.
// Defaults to DefaultBaseURL.
func WithBaseURL(baseURL string) ParserOption {
	return func(p *Parser) {
		p.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewParser returns a Parser over root.
func NewParser(root Node, opts ...ParserOption) *Parser {
	p := &Parser{
		root:    root,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// QueryNode returns the first descendant of the root matching def.Selector.
func (p *Parser) QueryNode(def Definition) (Node, bool) {
	if p.root == nil {
		return nil, false
	}
	return p.root.Find(def.Selector)
}

// QueryChildNodes returns the element children of the node matched by def.
func (p *Parser) QueryChildNodes(def Definition) ([]Node, bool) {
	node, ok := p.QueryNode(def)
	if !ok {
		return nil, false
	}
	var elements []Node
	for _, child := range node.Children() {
		if child.IsElement() {
			elements = append(elements, child)
		}
	}
	return elements, true
}

// HasNode reports whether def.Selector matches anything under the root.
func (p *Parser) HasNode(def Definition) bool {
	_, ok := p.QueryNode(def)
	return ok
}

// ParseInnerText returns the entity-decoded text of the matched node.
// Empty text is treated as absent.
func (p *Parser) ParseInnerText(def Definition) (string, bool) {
	node, ok := p.QueryNode(def)
	if !ok {
		return "", false
	}
	return decode(node.InnerText())
}

// ParseInnerTextRegex matches def.Regex against the decoded inner text.
// It is absent when there is no text, no pattern, or no match.
func (p *Parser) ParseInnerTextRegex(def Definition) (*Match, bool, error) {
	text, ok := p.ParseInnerText(def)
	if !ok || def.Regex == "" {
		return nil, false, nil
	}

	re, err := def.compile()
	if err != nil {
		return nil, false, err
	}

	idx := re.FindStringSubmatchIndex(text)
	if idx == nil {
		return nil, false, nil
	}

	m := &Match{
		Groups:  make([]string, len(idx)/2),
		matched: make([]bool, len(idx)/2),
		names:   re.SubexpNames(),
	}
	for i := range m.Groups {
		if idx[2*i] >= 0 {
			m.Groups[i] = text[idx[2*i]:idx[2*i+1]]
			m.matched[i] = true
		}
	}
	return m, true, nil
}

// ParseTooltip returns the entity-decoded tooltip attribute of the matched
// node. Empty text is treated as absent.
func (p *Parser) ParseTooltip(def Definition) (string, bool) {
	raw, ok := p.rawAttr(def, TooltipAttribute)
	if !ok {
		return "", false
	}
	return decode(raw)
}

// ParseAttribute returns the def.Attribute value of the matched node.
// An attribute present with an empty value is present.
func (p *Parser) ParseAttribute(def Definition) (string, bool) {
	if def.Attribute == "" {
		return "", false
	}
	return p.ParseAttributeNamed(def, def.Attribute)
}

// ParseAttributeNamed is like ParseAttribute but reads the attribute name,
// ignoring def.Attribute. The raw value is entity-decoded once.
func (p *Parser) ParseAttributeNamed(def Definition, name string) (string, bool) {
	raw, ok := p.rawAttr(def, name)
	if !ok {
		return "", false
	}
	return html.UnescapeString(raw), true
}

func (p *Parser) rawAttr(def Definition, name string) (string, bool) {
	node, ok := p.QueryNode(def)
	if !ok {
		return "", false
	}
	return node.Attr(name)
}

// ParseHref returns the href of the matched node as an absolute URL.
// Site-relative links are prefixed with the parser's base URL.
func (p *Parser) ParseHref(def Definition) (*url.URL, bool, error) {
	href, ok := p.ParseAttributeNamed(def, "href")
	if !ok || href == "" {
		return nil, false, nil
	}

	if !isAbsolute(href) {
		href = p.baseURL + href
	}

	u, err := parseAbsoluteURL(href, def)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// ParseHrefID returns the last path segment of the matched link, ignoring a
// single trailing slash. "/lodestone/character/123/?hl=en" yields "123".
// Query and fragment are not part of the id.
func (p *Parser) ParseHrefID(def Definition) (string, bool, error) {
	u, ok, err := p.ParseHref(def)
	if err != nil || !ok {
		return "", false, err
	}

	path := strings.TrimSuffix(u.Path, "/")
	return path[strings.LastIndex(path, "/")+1:], true, nil
}

// ParseHrefIDNumeric parses the link id as an unsigned integer.
// A present but non-numeric id is EFORMAT.
func (p *Parser) ParseHrefIDNumeric(def Definition) (uint64, bool, error) {
	id, ok, err := p.ParseHrefID(def)
	if err != nil || !ok {
		return 0, false, err
	}

	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false, Errorf(EFORMAT, "link id %q for selector %q is not numeric", id, def.Selector)
	}
	return n, true, nil
}

// ParseImageSource returns the src of the matched node. Image sources are
// expected to be absolute already and are not prefixed.
func (p *Parser) ParseImageSource(def Definition) (*url.URL, bool, error) {
	src, ok := p.ParseAttributeNamed(def, "src")
	if !ok || src == "" {
		return nil, false, nil
	}

	u, err := parseAbsoluteURL(src, def)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// Match holds the groups of a regular expression match.
// Groups[0] is the whole match.
type Match struct {
	Groups []string

	matched []bool
	names   []string
}

// Group returns capture group i. Groups that did not participate in the
// match are absent.
func (m *Match) Group(i int) (string, bool) {
	if i < 0 || i >= len(m.Groups) || !m.matched[i] {
		return "", false
	}
	return m.Groups[i], true
}

// Named returns the capture group with the given name.
func (m *Match) Named(name string) (string, bool) {
	for i, n := range m.names {
		if n != "" && n == name {
			return m.Group(i)
		}
	}
	return "", false
}

func decode(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	text := html.UnescapeString(raw)
	return text, text != ""
}

func isAbsolute(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}

func parseAbsoluteURL(raw string, def Definition) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EMALFORMED, "malformed URL %q for selector %q: %v", raw, def.Selector, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EMALFORMED, "malformed URL %q for selector %q: not absolute", raw, def.Selector)
	}
	return u, nil
}
