// Package nav describes the sidebars of the documentation site.
//
// The API reference sidebar is not written by hand: FromRegistry projects the
// endpoint registry's feature groups into navigation groups, so the two can
// not drift apart. Other sections (guide, examples, reference manual) are
// static tables or come from the site configuration. Checker cross-checks
// the resulting Model against the page tree and the registry.
package nav
