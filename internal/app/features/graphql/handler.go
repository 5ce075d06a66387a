// internal/app/features/graphql/handler.go
package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/system/httpjson"
	"github.com/habitstack/habitstack/internal/app/system/timeouts"
)

// Handler executes GraphQL requests. In production only POST is accepted;
// in other environments GET serves an interactive explorer.
type Handler struct {
	Schema     *graphqlgo.Schema
	Production bool
	Log        *zap.Logger
}

func NewHandler(resolver *Resolver, production bool, logger *zap.Logger) *Handler {
	schema := graphqlgo.MustParseSchema(Schema, resolver)
	return &Handler{Schema: schema, Production: production, Log: logger}
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Serve handles the /graphql endpoint.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.execute(w, r)
	case http.MethodGet:
		if h.Production {
			httpjson.WriteFailure(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.explorer(w)
	default:
		httpjson.WriteFailure(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// execute runs one operation. Any resolver error yields HTTP 400 with the
// uniform errors array; partial data, when present, is still included.
func (h *Handler) execute(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp := h.Schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = http.StatusBadRequest
		for _, gerr := range resp.Errors {
			h.Log.Debug("graphql resolver error", zap.String("error", gerr.Error()))
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// explorer serves a minimal GraphiQL page for manual queries in dev.
func (h *Handler) explorer(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(explorerHTML))
}

const explorerHTML = `<!DOCTYPE html>
<html>
<head>
  <title>GraphQL Explorer</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
</head>
<body style="margin:0">
  <div id="graphiql" style="height:100vh"></div>
  <script src="https://unpkg.com/react/umd/react.production.min.js"></script>
  <script src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
  <script src="https://unpkg.com/graphiql/graphiql.min.js"></script>
  <script>
    ReactDOM.render(
      React.createElement(GraphiQL, {
        fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
      }),
      document.getElementById('graphiql'),
    );
  </script>
</body>
</html>
`
