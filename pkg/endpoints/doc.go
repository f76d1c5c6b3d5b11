// Package endpoints models the surface of the database-management HTTP API
// as data.
//
// # Overview
//
// A Registry maps stable symbolic keys (CREATE_DATABASE, LIST_BACKUPS, ...)
// to Descriptors: an HTTP method, a parsed PathTemplate, an optional
// description and an auth requirement. The registry keeps declaration order
// and is immutable after NewRegistry returns, so documentation builders may
// read it from many goroutines without coordination.
//
// # Path Templates
//
// Templates are parsed strictly when the registry is built:
//
//	tmpl, err := endpoints.ParseTemplate("/database/{db_name}/table/{table_name}/structure")
//	path, err := tmpl.Render(map[string]string{"db_name": "shop", "table_name": "orders"})
//	// path == "/database/shop/table/orders/structure"
//
// Render fails with ErrMissingPlaceholderValue or ErrUnknownPlaceholder when
// the supplied values do not match the template.
//
// # Built-in Catalog
//
// Default returns the catalog documented by the site, grouped by feature
// area. The navigation package projects those groups into the API reference
// sidebar.
package endpoints
