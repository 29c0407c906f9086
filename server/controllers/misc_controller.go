package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dev-7msolution/restaurante-mobile/models"
	"github.com/dev-7msolution/restaurante-mobile/server/middleware"
)

// MiscController serves favorites, reviews, addresses and notifications.
// These are pure pass-through collections with no business logic, kept in
// memory per user for the lifetime of the stub process.
type MiscController struct {
	mu            sync.Mutex
	favorites     map[string][]string          // userID -> item ids
	reviews       map[string][]models.Review   // itemID -> reviews
	addresses     map[string][]models.Address  // userID -> addresses
	notifications map[string][]models.Notification // userID -> feed
}

func NewMiscController() *MiscController {
	return &MiscController{
		favorites:     make(map[string][]string),
		reviews:       make(map[string][]models.Review),
		addresses:     make(map[string][]models.Address),
		notifications: make(map[string][]models.Notification),
	}
}

// Health handles GET /health.
func (mc *MiscController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Favorites

func (mc *MiscController) ListFavorites(c *gin.Context) {
	mc.mu.Lock()
	ids := append([]string(nil), mc.favorites[c.GetString(middleware.CtxUserID)]...)
	mc.mu.Unlock()

	items := []models.MenuItem{}
	for _, id := range ids {
		if item, ok := FindMenuItem(id); ok {
			items = append(items, item)
		}
	}
	c.JSON(http.StatusOK, items)
}

func (mc *MiscController) AddFavorite(c *gin.Context) {
	var req struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}
	if _, ok := FindMenuItem(req.ItemID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado"})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, id := range mc.favorites[userID] {
		if id == req.ItemID {
			c.JSON(http.StatusOK, gin.H{"message": "Já está nos favoritos"})
			return
		}
	}
	mc.favorites[userID] = append(mc.favorites[userID], req.ItemID)
	c.JSON(http.StatusCreated, gin.H{"message": "Adicionado aos favoritos"})
}

func (mc *MiscController) RemoveFavorite(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	itemID := c.Param("id")

	mc.mu.Lock()
	defer mc.mu.Unlock()
	ids := mc.favorites[userID]
	for i, id := range ids {
		if id == itemID {
			mc.favorites[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removido dos favoritos"})
}

// Reviews

func (mc *MiscController) ListReviews(c *gin.Context) {
	mc.mu.Lock()
	reviews := append([]models.Review{}, mc.reviews[c.Param("itemId")]...)
	mc.mu.Unlock()
	c.JSON(http.StatusOK, reviews)
}

func (mc *MiscController) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}
	if _, ok := FindMenuItem(req.ItemID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado"})
		return
	}

	review := models.Review{
		ID:        uuid.NewString(),
		ItemID:    req.ItemID,
		UserID:    c.GetString(middleware.CtxUserID),
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	mc.mu.Lock()
	mc.reviews[req.ItemID] = append(mc.reviews[req.ItemID], review)
	mc.mu.Unlock()
	c.JSON(http.StatusCreated, review)
}

// Addresses

func (mc *MiscController) ListAddresses(c *gin.Context) {
	mc.mu.Lock()
	addrs := append([]models.Address{}, mc.addresses[c.GetString(middleware.CtxUserID)]...)
	mc.mu.Unlock()
	c.JSON(http.StatusOK, addrs)
}

func (mc *MiscController) CreateAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	addr := models.Address{
		ID:         uuid.NewString(),
		Type:       req.Type,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	userID := c.GetString(middleware.CtxUserID)
	mc.mu.Lock()
	mc.addresses[userID] = append(mc.addresses[userID], addr)
	mc.mu.Unlock()
	c.JSON(http.StatusCreated, addr)
}

func (mc *MiscController) UpdateAddress(c *gin.Context) {
	var req models.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Dados inválidos"})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	addrID := c.Param("id")

	mc.mu.Lock()
	defer mc.mu.Unlock()
	for i, addr := range mc.addresses[userID] {
		if addr.ID == addrID {
			updated := models.Address{
				ID:         addrID,
				Type:       req.Type,
				Street:     req.Street,
				City:       req.City,
				State:      req.State,
				PostalCode: req.PostalCode,
				Country:    req.Country,
			}
			mc.addresses[userID][i] = updated
			c.JSON(http.StatusOK, updated)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado"})
}

func (mc *MiscController) DeleteAddress(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	addrID := c.Param("id")

	mc.mu.Lock()
	defer mc.mu.Unlock()
	addrs := mc.addresses[userID]
	for i, addr := range addrs {
		if addr.ID == addrID {
			mc.addresses[userID] = append(addrs[:i], addrs[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Endereço removido"})
}

// Notifications

func (mc *MiscController) ListNotifications(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	mc.mu.Lock()
	if _, seeded := mc.notifications[userID]; !seeded {
		mc.notifications[userID] = []models.Notification{{
			ID:        uuid.NewString(),
			Title:     "Bem-vindo!",
			Body:      "Seu restaurante favorito agora na palma da mão.",
			CreatedAt: time.Now(),
		}}
	}
	feed := append([]models.Notification{}, mc.notifications[userID]...)
	mc.mu.Unlock()

	c.JSON(http.StatusOK, feed)
}

func (mc *MiscController) MarkNotificationRead(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	id := c.Param("id")

	mc.mu.Lock()
	defer mc.mu.Unlock()
	for i := range mc.notifications[userID] {
		if mc.notifications[userID][i].ID == id {
			mc.notifications[userID][i].Read = true
			c.JSON(http.StatusOK, mc.notifications[userID][i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado"})
}

func (mc *MiscController) MarkAllNotificationsRead(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	mc.mu.Lock()
	for i := range mc.notifications[userID] {
		mc.notifications[userID][i].Read = true
	}
	mc.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Notificações marcadas como lidas"})
}
