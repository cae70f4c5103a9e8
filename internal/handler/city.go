package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/service"
	"github.com/maxviazov/worldcities-service/pkg/response"
)

type CityHandler struct {
	svc service.CityService
}

func NewCityHandler(svc service.CityService) *CityHandler { return &CityHandler{svc: svc} }

func (h *CityHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/cities")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.POST("/is-dupe", h.isDupe)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

type cityRequest struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	CountryID int64   `json:"countryId"`
}

func (r cityRequest) model() model.City {
	return model.City{ID: r.ID, Name: r.Name, Lat: r.Lat, Lon: r.Lon, CountryID: r.CountryID}
}

func bindCity(c *gin.Context) (cityRequest, bool) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// parser details stay internal
		response.WriteError(c, response.InvalidParam("body", "malformed JSON"))
		return cityRequest{}, false
	}
	return req, true
}

func (h *CityHandler) list(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListCities(c.Request.Context(), p)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *CityHandler) getByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	city, err := h.svc.GetCity(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, city)
}

func (h *CityHandler) create(c *gin.Context) {
	req, ok := bindCity(c)
	if !ok {
		return
	}
	city, err := h.svc.CreateCity(c.Request.Context(), req.model())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+strconv.FormatInt(city.ID, 10))
	response.WriteData(c, http.StatusCreated, city)
}

// update answers 204 like the delete; a body id, when sent, must match the path.
func (h *CityHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	req, ok := bindCity(c)
	if !ok {
		return
	}
	if req.ID != 0 && req.ID != id {
		response.WriteError(c, response.InvalidParam("id", "does not match the path"))
		return
	}
	req.ID = id
	if _, err := h.svc.UpdateCity(c.Request.Context(), req.model()); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CityHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteCity(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CityHandler) isDupe(c *gin.Context) {
	req, ok := bindCity(c)
	if !ok {
		return
	}
	dupe, err := h.svc.IsDupeCity(c.Request.Context(), req.model())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, dupe)
}
