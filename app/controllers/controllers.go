// Package controllers translates HTTP requests into service calls. Handlers
// never touch GORM directly; they bind input, resolve the caller's identity,
// call a service, and write the JSON envelope.
package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/supplyco/pkg/ctx"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
)

// pageParams reads ?page= and ?perPage= with the service-wide defaults.
// Out-of-range values are clamped later by the pagination layer.
func pageParams(c *ctx.Context) (page, perPage int) {
	return c.QueryInt("page", 1), c.QueryInt("perPage", orm.DefaultPerPage)
}

// paramUint reads a numeric path parameter, writing a 400 on garbage.
func paramUint(c *ctx.Context, name string) (uint, bool) {
	v, err := c.ParamUint(name)
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

// paged is the uniform list response body.
func paged(items interface{}, p orm.Pagination) map[string]interface{} {
	return map[string]interface{}{"items": items, "pagination": p}
}
