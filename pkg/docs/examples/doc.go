// Package examples renders request snippets (curl, Python, JavaScript) for
// catalog endpoints from embedded templates.
package examples
