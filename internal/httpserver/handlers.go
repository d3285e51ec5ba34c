package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/repository/category"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/repository/location"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/repository/order"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/repository/product"
)

const perPage = 20

// Deps are the repositories the API routes read from and write to.
type Deps struct {
	Products   product.Repository
	Categories category.Repository
	Locations  location.Repository
	Orders     order.Repository
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}

func newHandlers(logger *log.Logger, deps Deps) *handlers {
	return &handlers{logger: logger, deps: deps}
}

// respondData wraps every successful payload in the {"data": ...} envelope.
func respondData(c *gin.Context, status int, payload any) {
	c.JSON(status, gin.H{"data": payload})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (h *handlers) listProducts(c *gin.Context) {
	params := product.ListParams{
		Page:    queryInt(c, "page", 1),
		PerPage: perPage,
	}
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid category")
			return
		}
		params.CategoryID = id
	}
	switch c.Query("order") {
	case "":
	case "asc":
		params.PriceOrder = domain.PriceOrderAsc
	case "desc":
		params.PriceOrder = domain.PriceOrderDesc
	default:
		respondError(c, http.StatusBadRequest, "invalid order")
		return
	}
	params.NameQuery = c.Query("q")

	items, total, err := h.deps.Products.List(c.Request.Context(), params)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []domain.Product{}
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}
	respondData(c, http.StatusOK, domain.FeedPage{
		Items:       items,
		CurrentPage: params.Page,
		LastPage:    lastPage,
	})
}

func (h *handlers) getProduct(c *gin.Context) {
	productID, err := pathID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.deps.Products.GetByID(c.Request.Context(), productID)
	if errors.Is(err, domain.ErrNotFound) {
		respondError(c, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.logger.Printf("get product: %v", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	respondData(c, http.StatusOK, p)
}

func (h *handlers) getVariant(c *gin.Context) {
	productID, err := pathID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}
	option := c.Query("option")
	if option == "" {
		respondError(c, http.StatusBadRequest, "missing option")
		return
	}

	variant, err := h.deps.Products.GetVariant(c.Request.Context(), productID, option)
	if errors.Is(err, domain.ErrNotFound) {
		respondError(c, http.StatusNotFound, "variant not found")
		return
	}
	if err != nil {
		h.logger.Printf("get variant: %v", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	respondData(c, http.StatusOK, variant)
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Categories.List(c.Request.Context())
	if err != nil {
		h.logger.Printf("list categories: %v", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	respondData(c, http.StatusOK, categories)
}

func (h *handlers) listLocations(c *gin.Context) {
	locations, err := h.deps.Locations.List(c.Request.Context())
	if err != nil {
		h.logger.Printf("list locations: %v", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	respondData(c, http.StatusOK, locations)
}

func (h *handlers) listShipping(c *gin.Context) {
	locationID, err := pathID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid location id")
		return
	}
	methods, err := h.deps.Locations.ListShipping(c.Request.Context(), locationID)
	if err != nil {
		h.logger.Printf("list shipping: %v", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if methods == nil {
		methods = []domain.ShippingMethod{}
	}
	respondData(c, http.StatusOK, methods)
}

func (h *handlers) createOrder(c *gin.Context) {
	var payload domain.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid order payload")
		return
	}
	if len(payload.Lines) == 0 {
		respondError(c, http.StatusBadRequest, "order has no lines")
		return
	}
	for _, line := range payload.Lines {
		if line.Count < 1 {
			respondError(c, http.StatusBadRequest, "line count must be at least 1")
			return
		}
	}

	created, err := h.deps.Orders.Create(c.Request.Context(), payload)
	if errors.Is(err, domain.ErrOutOfStock) {
		respondError(c, http.StatusConflict, "out of stock")
		return
	}
	if err != nil {
		h.logger.Printf("create order: %v", err)
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}
	respondData(c, http.StatusCreated, created)
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
