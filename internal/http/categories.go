package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kabarin/kabar/internal/database/categories"
)

type CategoriesController struct {
	categories *categories.Repository
}

func NewCategoriesController(repo *categories.Repository) *CategoriesController {
	return &CategoriesController{categories: repo}
}

func (ctrl *CategoriesController) List(c *gin.Context) {
	items, err := ctrl.categories.List()
	if err != nil {
		c.Error(err)
		return
	}

	respondOK(c, "", items)
}
