package main

import (
	"net/http"

	"github.com/centrifugal/centrifuge"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
)

const requestIDHeader = "X-Request-ID"

const anonymousAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// websocketIdentity gives every live connection an anonymous user id.
func websocketIdentity(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := nanoid.Generate(anonymousAlphabet, 12)
		if err != nil {
			http.Error(w, "failed to assign identity", http.StatusInternalServerError)
			return
		}

		context := r.Context()
		credentials := &centrifuge.Credentials{UserID: "anon-" + id}
		newContext := centrifuge.SetCredentials(context, credentials)
		r = r.WithContext(newContext)
		h.ServeHTTP(w, r)
	})
}
