// Package httputil provides JSON and HTML response helpers, query decoding
// and the middleware stack used by the docs server.
//
// Middleware is composed with Chain; RequestIDMiddleware must run first so
// that logging and recovery can find the request logger in the context:
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware(logger),
//		httputil.LoggingMiddleware,
//		httputil.RecoveryMiddleware,
//	)(router)
package httputil
