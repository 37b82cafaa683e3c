package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Run("uses the given timeout", func(t *testing.T) {
		c := NewHTTPClient(3 * time.Second)

		assert.Equal(t, 3*time.Second, c.Timeout)
		tr, ok := c.Transport.(*http.Transport)
		require.True(t, ok)
		assert.Equal(t, maxIdleConnsPerHost, tr.MaxIdleConnsPerHost)
		assert.Equal(t, tlsHandshakeTimeout, tr.TLSHandshakeTimeout)
	})

	t.Run("never returns a client without a timeout", func(t *testing.T) {
		c := NewHTTPClient(0)

		assert.Equal(t, 10*time.Second, c.Timeout)
	})
}
