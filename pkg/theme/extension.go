package theme

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// DefaultBaseURL is the production address of the documented API
const DefaultBaseURL = "https://dbapi.muzilix.cn"

// BaseURLKey is the key the base URL is provided under
const BaseURLKey = "api-base-url"

var (
	// ErrAlreadyInitialized is returned by a second Initialize call
	ErrAlreadyInitialized = errors.New("theme extension already initialized")

	// ErrInvalidBaseURL is returned for a base URL that is not absolute http(s)
	ErrInvalidBaseURL = errors.New("invalid API base URL")
)

// Extension registers the site's custom components and publishes the API base
// URL. It initializes exactly once.
type Extension struct {
	mu          sync.Mutex
	initialized bool
	baseURL     string
}

// NewExtension creates an uninitialized extension
func NewExtension() *Extension {
	return &Extension{}
}

// Inspector is implemented by apps that can report existing registrations.
// Initialize uses it to fail before touching such an app.
type Inspector interface {
	HasComponent(name string) bool
	Inject(key string) (any, bool)
}

// Initialize registers the ApiEndpoint component on app and provides baseURL
// under BaseURLKey. Any call after a successful one fails with
// ErrAlreadyInitialized and leaves app untouched. When app is an Inspector, a
// name or key that is already taken fails before anything is registered.
func (x *Extension) Initialize(app App, baseURL string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.initialized {
		return ErrAlreadyInitialized
	}

	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return err
	}

	if in, ok := app.(Inspector); ok {
		if in.HasComponent(EndpointComponentName) {
			return fmt.Errorf("failed to register %s: %w", EndpointComponentName, ErrComponentExists)
		}
		if _, taken := in.Inject(BaseURLKey); taken {
			return fmt.Errorf("failed to provide %s: %w", BaseURLKey, ErrAlreadyProvided)
		}
	}

	if err := app.Component(EndpointComponentName, NewEndpointCard()); err != nil {
		return fmt.Errorf("failed to register %s: %w", EndpointComponentName, err)
	}
	if err := app.Provide(BaseURLKey, normalized); err != nil {
		return fmt.Errorf("failed to provide %s: %w", BaseURLKey, err)
	}

	x.initialized = true
	x.baseURL = normalized
	return nil
}

// Initialized reports whether Initialize has succeeded
func (x *Extension) Initialized() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.initialized
}

// BaseURL returns the base URL bound at initialization
func (x *Extension) BaseURL() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.baseURL
}

// NormalizeBaseURL checks that raw is an absolute http(s) URL and strips
// trailing slashes so that base + "/path" is well formed.
func NormalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q must use http or https", ErrInvalidBaseURL, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidBaseURL, raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: %q must not carry a query or fragment", ErrInvalidBaseURL, raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// APIBaseURL looks up the provided base URL
func APIBaseURL(rc RenderContext) (string, bool) {
	if rc == nil {
		return "", false
	}
	v, ok := rc.Inject(BaseURLKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
