package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/service"
	"github.com/maxviazov/worldcities-service/pkg/response"
)

type CountryHandler struct {
	svc service.CountryService
}

func NewCountryHandler(svc service.CountryService) *CountryHandler { return &CountryHandler{svc: svc} }

func (h *CountryHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/countries")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.POST("/is-dupe", h.isDupe)
		g.GET("/is-dupe-field", h.isDupeField)
		g.GET("/:id", h.getByID)
		g.PUT("/:id", h.update)
		g.DELETE("/:id", h.delete)
	}
}

type countryRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	ISO2 string `json:"iso2"`
	ISO3 string `json:"iso3"`
}

func (r countryRequest) model() model.Country {
	return model.Country{ID: r.ID, Name: r.Name, ISO2: r.ISO2, ISO3: r.ISO3}
}

func bindCountry(c *gin.Context) (countryRequest, bool) {
	var req countryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, response.InvalidParam("body", "malformed JSON"))
		return countryRequest{}, false
	}
	return req, true
}

func (h *CountryHandler) list(c *gin.Context) {
	p, err := listParams(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	res, err := h.svc.ListCountries(c.Request.Context(), p)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *CountryHandler) getByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	country, err := h.svc.GetCountry(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, country)
}

func (h *CountryHandler) create(c *gin.Context) {
	req, ok := bindCountry(c)
	if !ok {
		return
	}
	country, err := h.svc.CreateCountry(c.Request.Context(), req.model())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+strconv.FormatInt(country.ID, 10))
	response.WriteData(c, http.StatusCreated, country)
}

func (h *CountryHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	req, ok := bindCountry(c)
	if !ok {
		return
	}
	if req.ID != 0 && req.ID != id {
		response.WriteError(c, response.InvalidParam("id", "does not match the path"))
		return
	}
	req.ID = id
	if _, err := h.svc.UpdateCountry(c.Request.Context(), req.model()); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CountryHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeleteCountry(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CountryHandler) isDupe(c *gin.Context) {
	req, ok := bindCountry(c)
	if !ok {
		return
	}
	dupe, err := h.svc.IsDupeCountry(c.Request.Context(), req.model())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, dupe)
}

type dupeFieldQuery struct {
	FieldName  string `form:"fieldName"`
	FieldValue string `form:"fieldValue"`
	CountryID  int64  `form:"countryId"`
}

func (h *CountryHandler) isDupeField(c *gin.Context) {
	var q dupeFieldQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.WriteError(c, response.InvalidParam("countryId", "must be an integer"))
		return
	}
	dupe, err := h.svc.IsDupeField(c.Request.Context(), q.FieldName, q.FieldValue, q.CountryID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, dupe)
}
