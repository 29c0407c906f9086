package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dev-7msolution/restaurante-mobile/models"
)

// Categories offered by the menu, in display order.
var MenuCategories = []string{"Entradas", "Pratos Principais", "Sobremesas", "Bebidas"}

// MenuItems is the fixed catalog the stub serves.
var MenuItems = []models.MenuItem{
	{
		ID:          "1",
		Name:        "Risotto de Camarão",
		Description: "Risotto cremoso com camarões frescos, açafrão e ervas finas selecionadas",
		Price:       5890,
		Category:    "Pratos Principais",
		Image:       "🍤",
		Available:   true,
		Rating:      4.8,
	},
	{
		ID:          "2",
		Name:        "Salmão Grelhado",
		Description: "Salmão fresco grelhado com legumes salteados e molho de ervas aromáticas",
		Price:       7290,
		Category:    "Pratos Principais",
		Image:       "🐟",
		Available:   true,
		Rating:      4.9,
	},
	{
		ID:          "3",
		Name:        "Bruschetta Especial",
		Description: "Pão artesanal italiano com tomate orgânico, manjericão e queijo burrata",
		Price:       2490,
		Category:    "Entradas",
		Image:       "🍞",
		Available:   true,
		Rating:      4.6,
	},
	{
		ID:          "4",
		Name:        "Tiramisu da Casa",
		Description: "Sobremesa italiana tradicional com café expresso e mascarpone artesanal",
		Price:       1890,
		Category:    "Sobremesas",
		Image:       "🍰",
		Available:   true,
		Rating:      4.7,
	},
	{
		ID:          "5",
		Name:        "Vinho Tinto Reserva",
		Description: "Vinho tinto encorpado com notas de frutas vermelhas e especiarias",
		Price:       8990,
		Category:    "Bebidas",
		Image:       "🍷",
		Available:   true,
		Rating:      4.5,
	},
	{
		ID:          "6",
		Name:        "Carpaccio de Carne",
		Description: "Fatias finas de carne bovina com rúcula, parmesão e molho de mostarda",
		Price:       4290,
		Category:    "Entradas",
		Image:       "🥩",
		Available:   true,
		Rating:      4.4,
	},
}

type MenuController struct{}

func NewMenuController() *MenuController {
	return &MenuController{}
}

// List handles GET /menu, optionally filtered by ?category=.
func (mc *MenuController) List(c *gin.Context) {
	category := c.Query("category")
	if category == "" || category == "Todos" {
		c.JSON(http.StatusOK, MenuItems)
		return
	}

	items := []models.MenuItem{}
	for _, item := range MenuItems {
		if item.Category == category {
			items = append(items, item)
		}
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /menu/:id.
func (mc *MenuController) Get(c *gin.Context) {
	id := c.Param("id")
	for _, item := range MenuItems {
		if item.ID == id {
			c.JSON(http.StatusOK, item)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Recurso não encontrado"})
}

// Search handles GET /menu/search?query=&category=.
func (mc *MenuController) Search(c *gin.Context) {
	query := strings.ToLower(c.Query("query"))
	category := c.Query("category")

	items := []models.MenuItem{}
	for _, item := range MenuItems {
		if category != "" && category != "Todos" && item.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}

// FindMenuItem looks up a dish by id in the fixed catalog.
func FindMenuItem(id string) (models.MenuItem, bool) {
	for _, item := range MenuItems {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}
