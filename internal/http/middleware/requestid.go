package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID on both request and response.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the ID is stored in Fiber's context locals.
	RequestIDLocalKey = "request_id"

	// Inbound IDs longer than this are replaced rather than echoed,
	// so a hostile client cannot inflate log lines or error envelopes.
	maxRequestIDLen = 64
)

// RequestID attaches an ID to every request. A usable inbound
// X-Request-ID is propagated as-is so callers can correlate across
// services; otherwise a fresh UUID is generated. The ID ends up in
// context locals, the response header, and every log line and error
// envelope for the request.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
