// Package docs generates reference documentation from the endpoint catalog.
//
// # Overview
//
// Generator turns an endpoints.Registry into a Documentation tree grouped by
// feature area, with example paths and request snippets. The tree is then
// exported:
//
//   - MarkdownExporter writes one page per group and endpoint, at the links
//     the API sidebar points to
//   - HTMLExporter renders a catalog page through the theme engine
//   - SiteConfigExporter emits the JSON config for the static site generator
//
// # Usage Example
//
//	doc, err := docs.NewGenerator(nav.APIPrefix).Generate(endpoints.Default(), baseURL)
//	pages, err := docs.NewMarkdownExporter().WritePages("docs", doc)
//
// # HTTP
//
// DocsHandlers serves the same data for live previews:
//
//	h, err := docs.NewDocsHandlers(endpoints.Default(), siteConfig)
//	h.RegisterRoutes(router)
//
// # Related Packages
//
//   - pkg/docs/diff: catalog changes between releases
//   - pkg/docs/examples: request snippets per language
package docs
