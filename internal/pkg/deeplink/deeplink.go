// internal/pkg/deeplink/deeplink.go
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/your-org/storefront-client/internal/config"
)

// Kind identifies what a deep link points at
type Kind string

const (
	KindVendor  Kind = "vendor"
	KindProduct Kind = "product"
)

// Route is a resolved deep link
type Route struct {
	Kind Kind
	ID   string
}

// Parser resolves scheme and web-domain deep links into routes
type Parser struct {
	scheme  string
	domains map[string]bool
}

// NewParser creates a parser for the configured scheme and domains
func NewParser(cfg *config.Config) *Parser {
	domains := make(map[string]bool, len(cfg.DeepLink.WebDomains))
	for _, d := range cfg.DeepLink.WebDomains {
		domains[strings.ToLower(d)] = true
	}
	return &Parser{
		scheme:  cfg.DeepLink.Scheme,
		domains: domains,
	}
}

// Parse resolves a raw URL. Accepted forms:
//
//	<scheme>://vendor/<id>       <scheme>://product/<id>
//	https://<domain>/vendor/<id> https://<domain>/product/<id>
func (p *Parser) Parse(raw string) (*Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid deep link: %w", err)
	}

	var kind, id string
	switch {
	case u.Scheme == p.scheme:
		// Custom scheme: the host segment is the kind
		kind = u.Host
		id = strings.Trim(u.Path, "/")
	case (u.Scheme == "https" || u.Scheme == "http") && p.domains[strings.ToLower(u.Host)]:
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) != 2 {
			return nil, fmt.Errorf("unrecognized deep link path %q", u.Path)
		}
		kind, id = segments[0], segments[1]
	default:
		return nil, fmt.Errorf("unrecognized deep link %q", raw)
	}

	if id == "" || strings.Contains(id, "/") {
		return nil, fmt.Errorf("deep link carries no usable id: %q", raw)
	}

	switch Kind(kind) {
	case KindVendor, KindProduct:
		return &Route{Kind: Kind(kind), ID: id}, nil
	}
	return nil, fmt.Errorf("unrecognized deep link target %q", kind)
}
