package graphql_router

import (
	_ "embed"

	"github.com/haierkeys/trade-journal-service/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	gqltracing "github.com/graph-gophers/graphql-go/trace/opentracing"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema 解析 schema 并绑定解析器
func NewSchema(a *app.App) (*graphql.Schema, error) {
	cfg := a.Config()
	opts := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{logger: a.Logger()}),
		graphql.Tracer(gqltracing.Tracer{}),
	}
	if cfg.GraphQL.MaxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(cfg.GraphQL.MaxDepth))
	}
	return graphql.ParseSchema(schemaSDL, NewResolver(a), opts...)
}

// NewHandler GraphQL HTTP 处理器
func NewHandler(schema *graphql.Schema) gin.HandlerFunc {
	return gin.WrapH(&relay.Handler{Schema: schema})
}
