// Package requestid tags every request with an ID.
//
// Middleware reuses a well-formed inbound X-Request-ID or generates a UUID,
// echoes it on the response and stores it in the request context.
// LoggerExtractor makes slog records logged with that context carry it, so
// session failures can be matched with access logs.
package requestid
