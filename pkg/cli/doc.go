// Package cli implements the docsgen command tree.
package cli
