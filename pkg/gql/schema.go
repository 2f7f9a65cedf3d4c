// Package gql exposes the property index, neighborhood scorer and matcher
// over GraphQL.
package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/hbracken/fedlease/pkg/inventory"
	"github.com/hbracken/fedlease/pkg/property"
	"github.com/hbracken/fedlease/pkg/rtree"
	"github.com/hbracken/fedlease/pkg/scoring"
)

var propertyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FederalProperty",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.ID, nil
				}
				return nil, nil
			},
		},
		"latitude": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.Latitude, nil
				}
				return nil, nil
			},
		},
		"longitude": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.Longitude, nil
				}
				return nil, nil
			},
		},
		"rsf": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.RSF, nil
				}
				return nil, nil
			},
		},
		"ownership": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return string(prop.Ownership), nil
				}
				return nil, nil
			},
		},
		"vacant": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.Vacant, nil
				}
				return nil, nil
			},
		},
		"agency": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.Agency, nil
				}
				return nil, nil
			},
		},
		"city": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.City, nil
				}
				return nil, nil
			},
		},
		"state": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if prop, ok := p.Source.(*property.FederalProperty); ok {
					return prop.State, nil
				}
				return nil, nil
			},
		},
	},
})

var neighborType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Neighbor",
	Fields: graphql.Fields{
		"property": &graphql.Field{
			Type: propertyType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if n, ok := p.Source.(rtree.Neighbor); ok {
					return n.Property, nil
				}
				return nil, nil
			},
		},
		"distanceMiles": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if n, ok := p.Source.(rtree.Neighbor); ok {
					return n.DistanceMiles, nil
				}
				return nil, nil
			},
		},
	},
})

var factorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FactorScore",
	Fields: graphql.Fields{
		"name": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if f, ok := p.Source.(scoring.FactorScore); ok {
					return f.Name, nil
				}
				return nil, nil
			},
		},
		"score": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if f, ok := p.Source.(scoring.FactorScore); ok {
					return f.Score, nil
				}
				return nil, nil
			},
		},
		"weight": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if f, ok := p.Source.(scoring.FactorScore); ok {
					return f.Weight, nil
				}
				return nil, nil
			},
		},
		"weighted": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if f, ok := p.Source.(scoring.FactorScore); ok {
					return f.Weighted, nil
				}
				return nil, nil
			},
		},
		"explanation": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if f, ok := p.Source.(scoring.FactorScore); ok {
					return f.Explanation, nil
				}
				return nil, nil
			},
		},
	},
})

var scoreType = graphql.NewObject(graphql.ObjectConfig{
	Name: "NeighborhoodScore",
	Fields: graphql.Fields{
		"score": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(*scoring.NeighborhoodScore); ok {
					return s.Score, nil
				}
				return nil, nil
			},
		},
		"grade": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(*scoring.NeighborhoodScore); ok {
					return s.Grade, nil
				}
				return nil, nil
			},
		},
		"percentile": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(*scoring.NeighborhoodScore); ok {
					return s.Percentile, nil
				}
				return nil, nil
			},
		},
		"factors": &graphql.Field{
			Type: graphql.NewList(factorType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(*scoring.NeighborhoodScore); ok {
					return s.Factors, nil
				}
				return nil, nil
			},
		},
		"totalProperties": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if s, ok := p.Source.(*scoring.NeighborhoodScore); ok {
					return s.Metrics.TotalProperties, nil
				}
				return nil, nil
			},
		},
	},
})

// GenerateSchema builds the query schema over the inventory manager.
func GenerateSchema(mgr *inventory.Manager) (graphql.Schema, error) {
	queryFields := graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return "ok", nil
			},
		},
		"property": &graphql.Field{
			Type: propertyType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.ID),
				},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, _ := p.Args["id"].(string)
				prop := mgr.Get(id)
				if prop == nil {
					return nil, nil
				}
				return prop, nil
			},
		},
		"searchRadius": &graphql.Field{
			Type: graphql.NewList(propertyType),
			Args: graphql.FieldConfigArgument{
				"latitude":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				"longitude":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				"radiusMiles": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				idx := mgr.Index()
				if idx == nil {
					return nil, fmt.Errorf("index not built")
				}
				lat := toFloat(p.Args["latitude"])
				lng := toFloat(p.Args["longitude"])
				radius := toFloat(p.Args["radiusMiles"])
				return idx.SearchRadius(lat, lng, radius), nil
			},
		},
		"nearest": &graphql.Field{
			Type: graphql.NewList(neighborType),
			Args: graphql.FieldConfigArgument{
				"latitude":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				"longitude": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				"k":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				idx := mgr.Index()
				if idx == nil {
					return nil, fmt.Errorf("index not built")
				}
				lat := toFloat(p.Args["latitude"])
				lng := toFloat(p.Args["longitude"])
				k, _ := p.Args["k"].(int)
				return idx.KNearest(lat, lng, k), nil
			},
		},
		"neighborhoodScore": &graphql.Field{
			Type: scoreType,
			Args: graphql.FieldConfigArgument{
				"latitude":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				"longitude":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				"radiusMiles": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				idx := mgr.Index()
				if idx == nil {
					return nil, fmt.Errorf("index not built")
				}
				lat := toFloat(p.Args["latitude"])
				lng := toFloat(p.Args["longitude"])
				radius := toFloat(p.Args["radiusMiles"])
				return scoring.CalculateNeighborhoodScore(idx, lat, lng, radius)
			},
		},
	}

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

// toFloat tolerates the int/float ambiguity of JSON-decoded variables.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
