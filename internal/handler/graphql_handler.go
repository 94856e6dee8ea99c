package handler

import (
	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"
)

// GraphQL mounts the whole API on a single endpoint. GraphiQL is served on
// GET from the same path when enabled; keep it off in production.
func GraphQL(schema graphql.Schema, graphiql bool) echo.HandlerFunc {
	h := gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   graphiql,
		GraphiQL: graphiql,
	})
	return echo.WrapHandler(h)
}
