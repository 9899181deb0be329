// Package graphql exposes the public catalogue as a read-only GraphQL API.
// Mutations stay on the REST surface where auth and validation live.
package graphql

import (
	"fmt"
	"net/http"
	"time"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/supplyco/app/repositories"
	pkggql "github.com/shashiranjanraj/supplyco/pkg/graphql"
)

var productType = gql.NewObject(gql.ObjectConfig{
	Name: "Product",
	Fields: gql.Fields{
		"id":          &gql.Field{Type: gql.Int},
		"shopId":      &gql.Field{Type: gql.Int},
		"name":        &gql.Field{Type: gql.String},
		"description": &gql.Field{Type: gql.String},
		"category":    &gql.Field{Type: gql.String},
		"price":       &gql.Field{Type: gql.Float},
		"stock":       &gql.Field{Type: gql.Int},
	},
})

var shopType = gql.NewObject(gql.ObjectConfig{
	Name: "Shop",
	Fields: gql.Fields{
		"id":    &gql.Field{Type: gql.Int},
		"name":  &gql.Field{Type: gql.String},
		"email": &gql.Field{Type: gql.String},
	},
})

// Handler builds the catalogue schema and returns its HTTP handler.
func Handler() (http.HandlerFunc, error) {
	products := repositories.NewProductRepository()
	shops := repositories.NewShopRepository()

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"product": &gql.Field{
				Type: productType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := products.FindByID(uint(id))
					if err != nil {
						return nil, err
					}
					return product, nil
				},
			},
			"shopProducts": &gql.Field{
				Type: gql.NewList(productType),
				Args: gql.FieldConfigArgument{
					"shopId": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					shopID, _ := p.Args["shopId"].(int)
					key := fmt.Sprintf("catalog:shop:%d", shopID)
					return products.CachedByShop(uint(shopID), key, 10*time.Minute)
				},
			},
			"searchProducts": &gql.Field{
				Type: gql.NewList(productType),
				Args: gql.FieldConfigArgument{
					"q": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					q, _ := p.Args["q"].(string)
					matches, _, err := products.Search(q, 1, 50)
					return matches, err
				},
			},
			"shops": &gql.Field{
				Type: gql.NewList(shopType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					all, _, err := shops.All(1, 100)
					return all, err
				},
			},
		},
	})

	schema, err := pkggql.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return pkggql.Handler(schema), nil
}
