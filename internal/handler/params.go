package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/pkg/response"
)

// pathID parses the :id segment. Range checks belong to the service.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, response.InvalidParam("id", "must be an integer")
	}
	return id, nil
}

// listParams binds the list query string over the defaults: absent parameters
// keep their default, malformed integers are rejected.
func listParams(c *gin.Context) (query.Params, error) {
	p := query.DefaultParams()
	if err := c.ShouldBindQuery(&p); err != nil {
		return query.Params{}, response.InvalidParam("query", "pageIndex and pageSize must be integers")
	}
	return p, nil
}
