package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"dashboard.GO/graphql"
	gqlmodels "dashboard.GO/graphql/models"
	"dashboard.GO/graphql/registry"
	"dashboard.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go; Query fields resolve on the
// embedded QueryResolver.
type RootResolver struct {
	*QueryResolver
}

// QueryResolver implements Query fields. Delegates to resolvers package.
type QueryResolver struct {
	res *resolvers.Resolver
}

func (r *QueryResolver) GridConfig(args graphql.GridConfigArgs) *gqlmodels.GridConfig {
	layout, selected := "", 0
	if args.Layout != nil {
		layout = *args.Layout
	}
	if args.Selected != nil && *args.Selected > 0 {
		selected = int(*args.Selected)
	}
	return r.res.GridConfig(layout, selected)
}

func (r *QueryResolver) Layouts() []*gqlmodels.GridConfig {
	return r.res.Layouts()
}

func (r *QueryResolver) PinnedLayout(ctx context.Context, args graphql.PinnedLayoutArgs) (*gqlmodels.PinnedLayout, error) {
	return r.res.PinnedLayout(ctx, int(args.CollectionID))
}

func (r *QueryResolver) PinnedLayouts(ctx context.Context) ([]*gqlmodels.PinnedLayout, error) {
	return r.res.PinnedLayouts(ctx)
}

func (r *QueryResolver) SortOptions() []*gqlmodels.SortOption {
	return r.res.SortOptions()
}

// Me is the signed-in user, or null outside a session.
func (r *QueryResolver) Me(ctx context.Context) *gqlmodels.Viewer {
	s := graphql.SessionFromContext(ctx)
	if s == nil {
		return nil
	}
	return &gqlmodels.Viewer{Username: s.Username, Variant: s.Variant}
}

func (r *QueryResolver) Extension(ctx context.Context, args graphql.ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(pinned resolvers.PinnedStore) (*gql.Schema, error) {
	root := &RootResolver{QueryResolver: &QueryResolver{res: resolvers.NewResolver(pinned)}}
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
