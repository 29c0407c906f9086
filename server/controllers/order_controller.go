package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-7msolution/restaurante-mobile/logger"
	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/server/database"
	"github.com/dev-7msolution/restaurante-mobile/server/middleware"
)

var validStatuses = map[string]bool{
	models.OrderStatusPreparing: true,
	models.OrderStatusOnTheWay:  true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCancelled: true,
}

type OrderController struct {
	Orders *database.OrderRepository
}

func NewOrderController(orders *database.OrderRepository) *OrderController {
	return &OrderController{Orders: orders}
}

// Create handles POST /orders.
func (oc *OrderController) Create(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	var total models.Cents
	for _, item := range req.Items {
		if item.Quantity < 1 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Quantidade deve ser pelo menos 1"})
			return
		}
		total += item.Price * models.Cents(item.Quantity)
	}

	ctx := c.Request.Context()
	userID := c.GetString(middleware.CtxUserID)

	seq, err := oc.Orders.CountByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	itemsJSON, _ := json.Marshal(req.Items)
	order := &database.Order{
		ID:              fmt.Sprintf("ORD-%d-%03d", time.Now().Year(), seq+1),
		UserID:          userID,
		Status:          models.OrderStatusPreparing,
		ItemsJSON:       string(itemsJSON),
		TotalCents:      int64(total),
		EstimatedTime:   "25-35 min",
		DeliveryAddress: req.DeliveryAddress,
		Observations:    req.Observations,
		CreatedAt:       time.Now(),
	}
	if err := oc.Orders.Create(ctx, order); err != nil {
		logger.Error("failed to create order", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	c.JSON(http.StatusCreated, order.ToWire())
}

// List handles GET /orders with page/limit pagination.
func (oc *OrderController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, err := oc.Orders.ListByUser(c.Request.Context(), c.GetString(middleware.CtxUserID), (page-1)*limit, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}

	out := make([]models.Order, len(orders))
	for i := range orders {
		out[i] = orders[i].ToWire()
	}
	c.JSON(http.StatusOK, out)
}

// get loads the order and enforces ownership.
func (oc *OrderController) get(c *gin.Context) (*database.Order, bool) {
	order, err := oc.Orders.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil || order.UserID != c.GetString(middleware.CtxUserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado"})
		return nil, false
	}
	return order, true
}

// Get handles GET /orders/:id.
func (oc *OrderController) Get(c *gin.Context) {
	order, ok := oc.get(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order.ToWire())
}

// UpdateStatus handles PATCH /orders/:id/status.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validStatuses[req.Status] {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	order, ok := oc.get(c)
	if !ok {
		return
	}

	order.Status = req.Status
	if err := oc.Orders.Update(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, order.ToWire())
}

// Cancel handles POST /orders/:id/cancel. Only orders still being
// prepared can be cancelled.
func (oc *OrderController) Cancel(c *gin.Context) {
	var req models.CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, ok := oc.get(c)
	if !ok {
		return
	}

	if order.Status != models.OrderStatusPreparing {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Pedido não pode mais ser cancelado"})
		return
	}

	order.Status = models.OrderStatusCancelled
	order.CancelReason = req.Reason
	if err := oc.Orders.Update(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		return
	}
	c.JSON(http.StatusOK, order.ToWire())
}
