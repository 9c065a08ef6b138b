package oauth

import (
	_ "embed"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProviderID identifies a supported OAuth provider.
type ProviderID string

// Supported providers.
const (
	Netlify       ProviderID = "netlify"
	GitHub        ProviderID = "github"
	GitLab        ProviderID = "gitlab"
	Slack         ProviderID = "slack"
	LinkedIn      ProviderID = "linkedin"
	StackExchange ProviderID = "stackexchange"
)

var providerIDs = []ProviderID{Netlify, GitHub, GitLab, Slack, LinkedIn, StackExchange}

// Providers returns all supported provider identifiers in display order.
func Providers() []ProviderID {
	return slices.Clone(providerIDs)
}

// ParseProviderID validates s against the supported providers.
func ParseProviderID(s string) (ProviderID, error) {
	id := ProviderID(s)
	if !slices.Contains(providerIDs, id) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, s)
	}
	return id, nil
}

func (p ProviderID) String() string {
	return string(p)
}

// Variant is the exchange behaviour a provider follows.
type Variant string

const (
	// CodeGrant is the RFC 6749 authorization code grant.
	// Tokens travel base64-encoded in the session cookie.
	CodeGrant Variant = "code_grant"

	// FormPost is a bespoke form-encoded POST that replays the raw state value.
	// Tokens travel as-is in the session cookie.
	FormPost Variant = "form_post"
)

// Codec returns the token transport codec bound to the variant.
func (v Variant) Codec() TokenCodec {
	if v == FormPost {
		return PlainCodec{}
	}
	return Base64Codec{}
}

// Endpoints is one row of the static provider table.
type Endpoints struct {
	TokenHost       string  `yaml:"token_host"`
	TokenPath       string  `yaml:"token_path"`
	AuthorizePath   string  `yaml:"authorize_path"`
	UserAPI         string  `yaml:"user_api"`
	ClientIDKey     string  `yaml:"client_id_key"`
	ClientSecretKey string  `yaml:"client_secret_key"`
	QuotaKeyKey     string  `yaml:"quota_key_key"`
	Variant         Variant `yaml:"variant"`
}

// TokenURL resolves TokenPath against TokenHost. An absolute TokenPath wins.
func (e Endpoints) TokenURL() (string, error) {
	return resolveURL(e.TokenHost, e.TokenPath)
}

// AuthURL resolves AuthorizePath against TokenHost. An absolute AuthorizePath wins.
func (e Endpoints) AuthURL() (string, error) {
	return resolveURL(e.TokenHost, e.AuthorizePath)
}

// RequiredKeys lists the environment variables the provider needs, in message order.
func (e Endpoints) RequiredKeys() []string {
	keys := []string{e.ClientIDKey, e.ClientSecretKey}
	if e.QuotaKeyKey != "" {
		keys = append(keys, e.QuotaKeyKey)
	}
	return keys
}

func resolveURL(host, path string) (string, error) {
	base, err := url.Parse(host)
	if err != nil {
		return "", fmt.Errorf("oauth: parse host %q: %w", host, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("oauth: parse path %q: %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}

//go:embed providers.yaml
var providersYAML []byte

var endpointTable = mustLoadEndpoints(providersYAML)

// EndpointsFor returns the static table row for the provider.
func EndpointsFor(p ProviderID) (Endpoints, bool) {
	e, ok := endpointTable[p]
	return e, ok
}

func mustLoadEndpoints(data []byte) map[ProviderID]Endpoints {
	table, err := loadEndpoints(data)
	if err != nil {
		panic(err)
	}
	return table
}

// loadEndpoints decodes and validates the provider table.
// Every supported provider must have exactly one complete row.
func loadEndpoints(data []byte) (map[ProviderID]Endpoints, error) {
	var raw map[string]Endpoints
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("oauth: decode endpoint table: %w", err)
	}

	table := make(map[ProviderID]Endpoints, len(raw))
	for name, e := range raw {
		id, err := ParseProviderID(name)
		if err != nil {
			return nil, fmt.Errorf("oauth: endpoint table: %w", err)
		}
		if e.Variant == "" {
			e.Variant = CodeGrant
		}
		if e.Variant != CodeGrant && e.Variant != FormPost {
			return nil, fmt.Errorf("oauth: endpoint table: %s: unknown variant %q", id, e.Variant)
		}
		var missing []string
		for field, v := range map[string]string{
			"token_host":        e.TokenHost,
			"client_id_key":     e.ClientIDKey,
			"client_secret_key": e.ClientSecretKey,
		} {
			if strings.TrimSpace(v) == "" {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return nil, fmt.Errorf("oauth: endpoint table: %s: missing %s", id, strings.Join(missing, ", "))
		}
		table[id] = e
	}

	for _, id := range providerIDs {
		if _, ok := table[id]; !ok {
			return nil, fmt.Errorf("oauth: endpoint table: no entry for %s", id)
		}
	}
	return table, nil
}
