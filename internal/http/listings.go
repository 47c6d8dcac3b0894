package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodsphere/server/internal/entities"
)

// ListingsController serves CRUD endpoints for one listing collection.
// Request bodies are stored as sent; only _id and createdAt are server-owned.
type ListingsController struct {
	store ListingStore
	coll  entities.Collection
}

func NewListingsController(store ListingStore, coll entities.Collection) *ListingsController {
	return &ListingsController{store: store, coll: coll}
}

// ListingRoutes names the paths a listing collection is served under.
type ListingRoutes struct {
	Create     string // POST
	Collection string // GET list
	Item       string // GET, PUT, DELETE; must contain :id
}

// CollectionRoutes returns the conventional REST layout under base.
func CollectionRoutes(base string) ListingRoutes {
	return ListingRoutes{Create: base, Collection: base, Item: base + "/:id"}
}

func (lc *ListingsController) RegisterRoutes(routes gin.IRoutes, paths ListingRoutes) {
	routes.POST(paths.Create, lc.Create)
	routes.GET(paths.Collection, lc.List)
	routes.GET(paths.Item, lc.Get)
	routes.PUT(paths.Item, lc.Update)
	routes.DELETE(paths.Item, lc.Delete)
}

// Create stores the request body as a new record.
func (lc *ListingsController) Create(c *gin.Context) {
	var item entities.Listing
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := lc.store.Create(c.Request.Context(), &item)
	if err != nil {
		respondInternalError(c, err, "create "+lc.coll.Resource)
		return
	}

	respondCreated(c, result)
}

// List returns every record.
func (lc *ListingsController) List(c *gin.Context) {
	items, err := lc.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list "+lc.coll.Resource)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Get returns one record by id.
func (lc *ListingsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := lc.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, lc.coll.Resource, "get "+lc.coll.Resource)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Update sets the collection's editable fields on a record, creating it when missing.
func (lc *ListingsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var item entities.Listing
	if err := c.ShouldBindJSON(&item); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := lc.store.Update(c.Request.Context(), id, &item)
	if err != nil {
		respondStoreError(c, err, lc.coll.Resource, "update "+lc.coll.Resource)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Delete removes a record by id.
func (lc *ListingsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := lc.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, lc.coll.Resource, "delete "+lc.coll.Resource)
		return
	}

	c.JSON(http.StatusOK, result)
}
