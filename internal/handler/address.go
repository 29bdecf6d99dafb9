package handler

import (
	"context"
	"net/http"
	"strconv"

	"address-api/internal/models"
	"address-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// AddressHandler handles the /addresses endpoints
type AddressHandler struct {
	addresses AddressService
	proximity ProximityService
}

// AddressService interface for dependency injection
type AddressService interface {
	Create(ctx context.Context, in models.AddressInput) (*models.Address, error)
	Get(ctx context.Context, id int64) (*models.Address, error)
	Update(ctx context.Context, id int64, in models.AddressInput) (*models.Address, error)
	Delete(ctx context.Context, id int64) (*models.Address, error)
}

// ProximityService interface for dependency injection
type ProximityService interface {
	WithinDistance(ctx context.Context, q models.ProximityQuery) ([]models.Address, error)
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addresses AddressService, proximity ProximityService) *AddressHandler {
	return &AddressHandler{addresses: addresses, proximity: proximity}
}

// Register mounts the address routes on the given router group
func (h *AddressHandler) Register(r gin.IRouter) {
	g := r.Group("/addresses")
	g.POST("/", h.Create)
	g.GET("/", h.WithinDistance)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /addresses/ requests
//
//	@Summary	Create an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		address	body		models.AddressInput	true	"Address"
//	@Success	200		{object}	models.Address
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses/ [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var in models.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid request body"})
		return
	}

	addr, err := h.addresses.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// Get handles GET /addresses/:id requests
//
//	@Summary	Get an address
//	@Tags		addresses
//	@Produce	json
//	@Param		id	path		int	true	"Address ID"
//	@Success	200	{object}	models.Address
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	addr, err := h.addresses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// Update handles PUT /addresses/:id requests
//
//	@Summary	Update an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Address ID"
//	@Param		address	body		models.AddressInput	true	"Address"
//	@Success	200		{object}	models.Address
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in models.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid request body"})
		return
	}

	addr, err := h.addresses.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// Delete handles DELETE /addresses/:id requests
//
//	@Summary	Delete an address
//	@Tags		addresses
//	@Produce	json
//	@Param		id	path		int	true	"Address ID"
//	@Success	200	{object}	models.Address
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	addr, err := h.addresses.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addr)
}

// WithinDistance handles GET /addresses/?lat=&lon=&distance= requests
//
//	@Summary	List addresses within a radius
//	@Tags		addresses
//	@Produce	json
//	@Param		lat			query		number	true	"Reference latitude"
//	@Param		lon			query		number	true	"Reference longitude"
//	@Param		distance	query		number	true	"Radius in kilometers"
//	@Success	200			{array}		models.Address
//	@Failure	422			{object}	ErrorResponse
//	@Router		/addresses/ [get]
func (h *AddressHandler) WithinDistance(c *gin.Context) {
	q, err := validation.ValidateProximityQuery(c.Query("lat"), c.Query("lon"), c.Query("distance"))
	if err != nil {
		respondError(c, err)
		return
	}

	addresses, err := h.proximity.WithinDistance(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid address id", Field: "id"})
		return 0, false
	}
	return id, true
}
