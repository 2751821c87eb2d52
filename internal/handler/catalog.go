package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/RichardSen18/boardgame-store/internal/model"
	"github.com/RichardSen18/boardgame-store/internal/repository"
)

// CatalogHandler serves the games catalog: public reads plus admin-only
// writes.
type CatalogHandler struct {
	Games *repository.GameRepo
}

func NewCatalogHandler(games *repository.GameRepo) *CatalogHandler {
	if games == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Games: games}
}

type gameReq struct {
	Title        string  `json:"title"`
	Manufacturer string  `json:"manufacturer"`
	Stock        int     `json:"stock"`
	SalePrice    float64 `json:"sale_price"`
	HourlyPrice  float64 `json:"hourly_price"`
}

// CreateGame handles POST /v1/games.
func (h *CatalogHandler) CreateGame(c echo.Context) error {
	var body gameReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if body.Stock < 0 || body.SalePrice < 0 || body.HourlyPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock and prices must not be negative"})
	}
	g := model.Game{
		Title:        body.Title,
		Manufacturer: body.Manufacturer,
		Stock:        body.Stock,
		SalePrice:    body.SalePrice,
		HourlyPrice:  body.HourlyPrice,
	}
	if err := h.Games.Create(c.Request().Context(), &g); err != nil {
		if err == repository.ErrTitleExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "title already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create game"})
	}
	return c.JSON(http.StatusCreated, g)
}

// GetGame handles GET /v1/games/:id. A `?title=` query on the list route
// covers lookup by title.
func (h *CatalogHandler) GetGame(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	g, err := h.Games.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrGameNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, g)
}

// ListGames handles GET /v1/games. With a title query parameter it returns
// the single matching game instead of the whole catalog.
func (h *CatalogHandler) ListGames(c echo.Context) error {
	if title := strings.TrimSpace(c.QueryParam("title")); title != "" {
		g, err := h.Games.GetByTitle(c.Request().Context(), title)
		if err != nil {
			if err == repository.ErrGameNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return c.JSON(http.StatusOK, g)
	}
	games, err := h.Games.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, games)
}

// UpdateGame handles PUT /v1/games/:id. Stock is not updatable here; use
// Restock.
func (h *CatalogHandler) UpdateGame(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body gameReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	if body.SalePrice < 0 || body.HourlyPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prices must not be negative"})
	}
	err := h.Games.Update(c.Request().Context(), id, body.Title, body.Manufacturer, body.SalePrice, body.HourlyPrice)
	if err != nil {
		switch err {
		case repository.ErrGameNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		case repository.ErrTitleExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "title already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Games.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Restock handles POST /v1/games/:id/restock and credits copies back to
// stock (returns, supplier deliveries).
func (h *CatalogHandler) Restock(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil || body.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	if err := h.Games.Restock(c.Request().Context(), id, body.Quantity); err != nil {
		if err == repository.ErrGameNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "restock failed"})
	}
	updated, err := h.Games.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteGame handles DELETE /v1/games/:id. Games with sale or session
// history are protected by foreign keys.
func (h *CatalogHandler) DeleteGame(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Games.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrGameNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete: historical records exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
