package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
)

const rawBodyContextKey = "raw_body"

// PreserveRawBody buffers the request body into the context before gin's
// binding helpers can consume it. The Stripe webhook handler needs the
// exact bytes Stripe signed, not a re-marshaled copy.
func PreserveRawBody(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	c.Set(rawBodyContextKey, body)
	c.Next()
}

// RawBody returns the buffered body PreserveRawBody stashed on c.
func RawBody(c *gin.Context) []byte {
	if v, ok := c.Get(rawBodyContextKey); ok {
		if b, ok := v.([]byte); ok {
			return b
		}
	}
	return nil
}
