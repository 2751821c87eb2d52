package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RichardSen18/boardgame-store/internal/queue"
	"github.com/RichardSen18/boardgame-store/internal/repository"
	publisher "github.com/RichardSen18/boardgame-store/internal/service"
)

// SaleHandler records and reverses sales. The repository guarantees the
// stock decrement and the sale row move together; this layer only maps
// error kinds to HTTP responses and emits the sale.recorded event after a
// successful commit.
type SaleHandler struct {
	Sales *repository.SaleRepo
	Games *repository.GameRepo
	Users *repository.UserRepo
}

func NewSaleHandler(sales *repository.SaleRepo, games *repository.GameRepo, users *repository.UserRepo) *SaleHandler {
	if sales == nil || games == nil || users == nil {
		panic("nil repository passed to NewSaleHandler")
	}
	return &SaleHandler{Sales: sales, Games: games, Users: users}
}

// CreateSale handles POST /v1/sales.
func (h *SaleHandler) CreateSale(c echo.Context) error {
	var body struct {
		BuyerID  uint64 `json:"buyer_id"`
		GameID   uint64 `json:"game_id"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.BuyerID == 0 || body.GameID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "buyer_id and game_id are required"})
	}
	if body.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}

	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, body.BuyerID); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "buyer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	sale, err := h.Sales.Create(ctx, body.BuyerID, body.GameID, body.Quantity)
	if err != nil {
		if err == repository.ErrGameNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		if repository.IsInsufficientStock(err) {
			// Business rejection: do not retry, the stock really is gone.
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sale failed"})
	}

	// Best-effort event; a broker outage must not fail the sale.
	title := ""
	if g, err := h.Games.GetByID(ctx, sale.GameID); err == nil {
		title = g.Title
	}
	if err := publisher.SaleRecorded(ctx, queue.SaleRecordedEvent{
		SaleID:     sale.ID,
		BuyerID:    sale.BuyerID,
		GameID:     sale.GameID,
		GameTitle:  title,
		Quantity:   sale.Quantity,
		TotalPrice: sale.TotalPrice,
		SoldAt:     sale.SoldAt.Format(time.RFC3339),
	}); err != nil {
		log.Printf("sale %d: publish event failed: %v", sale.ID, err)
	}

	return c.JSON(http.StatusCreated, sale)
}

// GetSale handles GET /v1/sales/:id.
func (h *SaleHandler) GetSale(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sale, err := h.Sales.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrSaleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, sale)
}

// ListBuyerSales handles GET /v1/users/:id/sales.
func (h *SaleHandler) ListBuyerSales(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	sales, err := h.Sales.ListByBuyer(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, sales)
}

// DeleteSale handles DELETE /v1/sales/:id. The sale row is removed and the
// game's stock re-credited by the original quantity.
func (h *SaleHandler) DeleteSale(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Sales.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrSaleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sale not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
