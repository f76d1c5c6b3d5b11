package docs

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/muzilix/dbapi-docs/pkg/config"
	"github.com/muzilix/dbapi-docs/pkg/docs/examples"
	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/muzilix/dbapi-docs/pkg/httputil"
	"github.com/muzilix/dbapi-docs/pkg/nav"
	"github.com/muzilix/dbapi-docs/pkg/observability"
	"github.com/muzilix/dbapi-docs/pkg/theme"
)

// site is everything derived from one site config. It is swapped whole on
// reload.
type site struct {
	gen    uint64
	cfg    *config.SiteConfig
	model  *nav.Model
	doc    *Documentation
	engine *theme.Engine
	html   *HTMLExporter
}

// DocsHandlers serves the catalog, sidebars and rendered cards over HTTP
type DocsHandlers struct {
	registry *endpoints.Registry
	manifest *SiteConfigExporter
	metrics  *observability.Metrics
	cache    *lru.LRU[string, template.HTML]

	mu      sync.RWMutex
	current *site
}

// Option configures DocsHandlers
type Option func(*handlerOptions)

type handlerOptions struct {
	metrics   *observability.Metrics
	cacheSize int
	cacheTTL  time.Duration
}

// WithMetrics records cache hits and misses
func WithMetrics(m *observability.Metrics) Option {
	return func(o *handlerOptions) { o.metrics = m }
}

// WithRenderCache bounds the rendered card cache
func WithRenderCache(size int, ttl time.Duration) Option {
	return func(o *handlerOptions) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// NewDocsHandlers creates documentation handlers over reg and cfg
func NewDocsHandlers(reg *endpoints.Registry, cfg *config.SiteConfig, opts ...Option) (*DocsHandlers, error) {
	o := handlerOptions{cacheSize: 256, cacheTTL: 10 * time.Minute}
	for _, opt := range opts {
		opt(&o)
	}

	h := &DocsHandlers{
		registry: reg,
		manifest: NewSiteConfigExporter(),
		metrics:  o.metrics,
		cache:    lru.NewLRU[string, template.HTML](o.cacheSize, nil, o.cacheTTL),
	}
	if err := h.Reload(cfg); err != nil {
		return nil, err
	}
	return h, nil
}

// BuildSite derives the sidebar model, documentation and a freshly
// initialized theme engine from cfg.
func BuildSite(reg *endpoints.Registry, cfg *config.SiteConfig) (*nav.Model, *Documentation, *theme.Engine, error) {
	model, err := cfg.NavModel(reg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build navigation: %w", err)
	}
	doc, err := NewGenerator(cfg.APIPrefix).Generate(reg, cfg.APIBaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate documentation: %w", err)
	}
	engine := theme.NewEngine()
	if err := theme.NewExtension().Initialize(engine, cfg.APIBaseURL); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize theme: %w", err)
	}
	return model, doc, engine, nil
}

// Reload rebuilds everything derived from the site config. On error the
// previous state is kept.
func (h *DocsHandlers) Reload(cfg *config.SiteConfig) error {
	model, doc, engine, err := BuildSite(h.registry, cfg)
	if err != nil {
		return err
	}

	h.mu.Lock()
	var gen uint64
	if h.current != nil {
		gen = h.current.gen + 1
	}
	h.current = &site{gen: gen, cfg: cfg, model: model, doc: doc, engine: engine, html: NewHTMLExporter(engine)}
	h.mu.Unlock()
	h.cache.Purge()
	return nil
}

func (h *DocsHandlers) state() *site {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Generation counts successful reloads since construction
func (h *DocsHandlers) Generation() uint64 {
	if s := h.state(); s != nil {
		return s.gen
	}
	return 0
}

// Ready reports whether a site config has been loaded
func (h *DocsHandlers) Ready() error {
	if h.state() == nil {
		return errors.New("site not loaded")
	}
	return nil
}

// RegisterRoutes registers documentation routes
func (h *DocsHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/catalog", h.listCatalog).Methods(http.MethodGet)
	router.HandleFunc("/catalog.html", h.catalogHTML).Methods(http.MethodGet)
	router.HandleFunc("/catalog/{key}", h.getEndpoint).Methods(http.MethodGet)
	router.HandleFunc("/catalog/{key}/path", h.withRenderContext(h.renderPath)).Methods(http.MethodGet)
	router.HandleFunc("/catalog/{key}/example/{lang}", h.getExample).Methods(http.MethodGet)
	router.HandleFunc("/sidebar/{section}", h.getSidebar).Methods(http.MethodGet)
	router.HandleFunc("/render/{key}", h.renderCard).Methods(http.MethodGet)
	router.HandleFunc("/config.json", h.siteConfig).Methods(http.MethodGet)
}

// CatalogEntry is the JSON form of one endpoint
type CatalogEntry struct {
	Key          string `json:"key"`
	Group        string `json:"group"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	Description  string `json:"description,omitempty"`
	RequiresAuth bool   `json:"requiresAuth"`
	Hidden       bool   `json:"hidden,omitempty"`
	Link         string `json:"link"`
}

// EndpointDetail adds the worked example to a catalog entry
type EndpointDetail struct {
	CatalogEntry
	Params      []string           `json:"params"`
	ExamplePath string             `json:"examplePath"`
	URL         string             `json:"url"`
	Examples    []examples.Snippet `json:"examples"`
}

func catalogEntry(ep *EndpointDoc) CatalogEntry {
	return CatalogEntry{
		Key:          ep.Key,
		Group:        ep.Group,
		Method:       ep.Method,
		Path:         ep.Path,
		Description:  ep.Description,
		RequiresAuth: ep.RequiresAuth,
		Hidden:       ep.Hidden,
		Link:         ep.Link,
	}
}

// CatalogQuery filters GET /catalog
type CatalogQuery struct {
	Group string `schema:"group"`
	Auth  *bool  `schema:"auth"`
}

// listCatalog handles GET /catalog
func (h *DocsHandlers) listCatalog(w http.ResponseWriter, r *http.Request) {
	var q CatalogQuery
	if err := httputil.DecodeQuery(r, &q); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	doc := h.state().doc
	out := []CatalogEntry{}
	for _, g := range doc.Groups {
		if q.Group != "" && g.Tag != q.Group {
			continue
		}
		for _, ep := range g.Endpoints {
			if q.Auth != nil && ep.RequiresAuth != *q.Auth {
				continue
			}
			out = append(out, catalogEntry(ep))
		}
	}

	_ = httputil.WriteJSON(w, http.StatusOK, out)
}

// getEndpoint handles GET /catalog/{key}
func (h *DocsHandlers) getEndpoint(w http.ResponseWriter, r *http.Request) {
	ep, ok := h.endpointOrError(w, r, h.state().doc)
	if !ok {
		return
	}

	_ = httputil.WriteJSON(w, http.StatusOK, EndpointDetail{
		CatalogEntry: catalogEntry(ep),
		Params:       ep.Params,
		ExamplePath:  ep.ExamplePath,
		URL:          ep.URL,
		Examples:     ep.Examples,
	})
}

// renderPath handles GET /catalog/{key}/path?name=value
func (h *DocsHandlers) renderPath(w http.ResponseWriter, r *http.Request) {
	key, ok := httputil.ParsePathStringOrError(w, r, "key")
	if !ok {
		return
	}
	d, err := h.registry.Lookup(key)
	if err != nil {
		writeDocsError(w, err)
		return
	}

	path, err := endpoints.RenderExamplePath(d, httputil.QueryValues(r.URL.Query()))
	if err != nil {
		writeDocsError(w, err)
		return
	}

	base := h.state().doc.BaseURL
	if rc, ok := theme.FromContext(r.Context()); ok {
		if v, ok := theme.APIBaseURL(rc); ok {
			base = v
		}
	}

	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"key":  key,
		"path": path,
		"url":  base + path,
	})
}

// withRenderContext attaches the current engine as the request's render
// context, so one request sees one config generation.
func (h *DocsHandlers) withRenderContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := theme.NewContext(r.Context(), h.state().engine)
		next(w, r.WithContext(ctx))
	}
}

// getExample handles GET /catalog/{key}/example/{lang}
func (h *DocsHandlers) getExample(w http.ResponseWriter, r *http.Request) {
	ep, ok := h.endpointOrError(w, r, h.state().doc)
	if !ok {
		return
	}
	lang := mux.Vars(r)["lang"]
	for _, s := range ep.Examples {
		if s.Language == lang {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(s.Code))
			return
		}
	}
	writeDocsError(w, fmt.Errorf("%w: %s", examples.ErrUnknownLanguage, lang))
}

// getSidebar handles GET /sidebar/{section}
func (h *DocsHandlers) getSidebar(w http.ResponseWriter, r *http.Request) {
	section, ok := httputil.ParsePathStringOrError(w, r, "section")
	if !ok {
		return
	}
	groups, err := h.state().model.SidebarFor(section)
	if err != nil {
		writeDocsError(w, err)
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, groups)
}

// renderCard handles GET /render/{key}
func (h *DocsHandlers) renderCard(w http.ResponseWriter, r *http.Request) {
	s := h.state()
	ep, ok := h.endpointOrError(w, r, s.doc)
	if !ok {
		return
	}

	// cards embed the base URL, so entries are scoped to one config generation
	cacheKey := fmt.Sprintf("%d/%s", s.gen, ep.Key)
	if card, hit := h.cache.Get(cacheKey); hit {
		if h.metrics != nil {
			h.metrics.CacheHitsTotal.Inc()
		}
		_ = httputil.WriteHTML(w, http.StatusOK, string(card))
		return
	}
	if h.metrics != nil {
		h.metrics.CacheMissesTotal.Inc()
	}

	card, err := s.html.ExportEndpoint(ep)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).WithField("key", ep.Key).Error("failed to render card")
		httputil.WriteInternalError(w, err)
		return
	}
	h.cache.Add(cacheKey, card)
	_ = httputil.WriteHTML(w, http.StatusOK, string(card))
}

// catalogHTML handles GET /catalog.html
func (h *DocsHandlers) catalogHTML(w http.ResponseWriter, r *http.Request) {
	s := h.state()
	page, err := s.html.Export(s.doc)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	_ = httputil.WriteHTML(w, http.StatusOK, page)
}

// siteConfig handles GET /config.json
func (h *DocsHandlers) siteConfig(w http.ResponseWriter, r *http.Request) {
	s := h.state()
	_ = httputil.WriteJSON(w, http.StatusOK, h.manifest.Build(s.cfg, s.model))
}

func (h *DocsHandlers) endpointOrError(w http.ResponseWriter, r *http.Request, doc *Documentation) (*EndpointDoc, bool) {
	key, ok := httputil.ParsePathStringOrError(w, r, "key")
	if !ok {
		return nil, false
	}
	ep, found := doc.Endpoint(key)
	if !found {
		writeDocsError(w, fmt.Errorf("%w: %s", endpoints.ErrNotFound, key))
		return nil, false
	}
	return ep, true
}

// writeDocsError maps package errors onto HTTP status codes
func writeDocsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, endpoints.ErrNotFound),
		errors.Is(err, nav.ErrUnknownSection),
		errors.Is(err, examples.ErrUnknownLanguage):
		httputil.WriteError(w, http.StatusNotFound, err)
	case errors.Is(err, endpoints.ErrMissingPlaceholderValue),
		errors.Is(err, endpoints.ErrUnknownPlaceholder):
		var pe *endpoints.PlaceholderError
		if errors.As(err, &pe) {
			httputil.WriteDetailedError(w, http.StatusBadRequest, err, map[string]string{
				"placeholder": pe.Name,
				"template":    pe.Template,
			})
			return
		}
		httputil.WriteError(w, http.StatusBadRequest, err)
	default:
		httputil.WriteInternalError(w, err)
	}
}
