package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func wireGraph(r chi.Router, graphHandler http.Handler) {
	// POST /graphql - queries and mutations
	r.Method(http.MethodPost, "/graphql", graphHandler)
}
