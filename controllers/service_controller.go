package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/models"
)

// GetServices handles GET /api/services - lists available laundry services
func GetServices(c *gin.Context) {
	db := config.GetDB()
	var svcs []models.Service
	if err := db.Where("available = ?", true).Find(&svcs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch services",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    svcs,
	})
}

// CreateServiceRequest represents the request body for adding a service
type CreateServiceRequest struct {
	Name               string  `json:"name" binding:"required"`
	Description        string  `json:"description" binding:"required"`
	PricePerKg         float64 `json:"pricePerKg" binding:"required,gt=0"`
	Icon               string  `json:"icon"`
	Available          *bool   `json:"available"`
	EstimatedTimeHours int     `json:"estimatedTime" binding:"required,gt=0"`
}

// CreateService handles POST /api/services (admin only)
func CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	service := models.Service{
		Name:               req.Name,
		Description:        req.Description,
		PricePerKg:         req.PricePerKg,
		Icon:               req.Icon,
		Available:          available,
		EstimatedTimeHours: req.EstimatedTimeHours,
	}

	if err := config.GetDB().Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateServiceRequest is a partial update of a service definition
type UpdateServiceRequest struct {
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	PricePerKg         *float64 `json:"pricePerKg"`
	Icon               *string  `json:"icon"`
	Available          *bool    `json:"available"`
	EstimatedTimeHours *int     `json:"estimatedTime"`
}

// UpdateService handles PATCH /api/services/:id (admin only)
func UpdateService(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var service models.Service
	if err := db.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Service not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PricePerKg != nil {
		updates["price_per_kg"] = *req.PricePerKg
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	if req.EstimatedTimeHours != nil {
		updates["estimated_time_hours"] = *req.EstimatedTimeHours
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    service,
		})
		return
	}

	if err := db.Model(&service).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}
