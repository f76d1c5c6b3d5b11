// Package theme is the one-time composition step between the site and its
// rendering engine: Extension.Initialize registers the ApiEndpoint card and
// provides the API base URL, which components read back through Inject
// rather than a package global.
package theme
