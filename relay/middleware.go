// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package relay

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pborman/uuid"
)

type correlationIDKey struct{}

// correlationID attaches a per-request UUID to the request context and
// the response headers, so a signature POST can be traced through the
// structured logs it produces.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), correlationIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// MountWithMiddleware registers the relay's REST surface onto router
// with correlation-ID tagging and gzip compression.
func (s *Server) MountWithMiddleware(router *mux.Router) http.Handler {
	s.Mount(router)
	return handlers.CompressHandler(correlationID(router))
}
