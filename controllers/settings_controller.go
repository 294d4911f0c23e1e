package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/models"
	"gorm.io/gorm"
)

// loadSettings fetches the settings singleton, creating defaults on first use
func loadSettings(db *gorm.DB) (*models.SystemSettings, error) {
	var settings models.SystemSettings
	err := db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.SystemSettings{
			Pricing: models.Pricing{Currency: "USD"},
			BusinessHours: models.BusinessHours{
				OpeningTime: "08:00",
				ClosingTime: "20:00",
				WorkingDays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
			},
			ServiceOptions: models.ServiceOptions{
				ExpressDelivery: true,
				CashOnDelivery:  true,
				OnlinePayment:   true,
			},
		}
		if err := db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetSystemSettings handles GET /api/system-settings (admin only)
func GetSystemSettings(c *gin.Context) {
	settings, err := loadSettings(config.GetDB())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch system settings",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}

// UpdateSystemSettingsRequest replaces entire settings sections
type UpdateSystemSettingsRequest struct {
	Pricing        *models.Pricing        `json:"pricing"`
	BusinessHours  *models.BusinessHours  `json:"businessHours"`
	ServiceOptions *models.ServiceOptions `json:"serviceOptions"`
}

// UpdateSystemSettings handles PUT /api/system-settings (admin only)
func UpdateSystemSettings(c *gin.Context) {
	var req UpdateSystemSettingsRequest
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
	settings, err := loadSettings(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch system settings",
			},
		})
		return
	}

	if req.Pricing != nil {
		settings.Pricing = *req.Pricing
	}
	if req.BusinessHours != nil {
		settings.BusinessHours = *req.BusinessHours
	}
	if req.ServiceOptions != nil {
		settings.ServiceOptions = *req.ServiceOptions
	}

	if err := db.Save(settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update system settings",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings,
	})
}

// UpdatePricing handles PATCH /api/system-settings/pricing (admin only)
func UpdatePricing(c *gin.Context) {
	var pricing models.Pricing
	if err := c.ShouldBindJSON(&pricing); err != nil {
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
	settings, err := loadSettings(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch system settings",
			},
		})
		return
	}

	settings.Pricing = pricing
	if err := db.Save(settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update pricing",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings.Pricing,
	})
}

// UpdateBusinessHours handles PATCH /api/system-settings/business-hours (admin only)
func UpdateBusinessHours(c *gin.Context) {
	var hours models.BusinessHours
	if err := c.ShouldBindJSON(&hours); err != nil {
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
	settings, err := loadSettings(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch system settings",
			},
		})
		return
	}

	settings.BusinessHours = hours
	if err := db.Save(settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update business hours",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings.BusinessHours,
	})
}

// UpdateServiceOptions handles PATCH /api/system-settings/service-options (admin only)
func UpdateServiceOptions(c *gin.Context) {
	var options models.ServiceOptions
	if err := c.ShouldBindJSON(&options); err != nil {
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
	settings, err := loadSettings(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch system settings",
			},
		})
		return
	}

	settings.ServiceOptions = options
	if err := db.Save(settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update service options",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    settings.ServiceOptions,
	})
}

// GetServiceAreas handles GET /api/system-settings/service-areas (admin only)
func GetServiceAreas(c *gin.Context) {
	var areas []models.ServiceArea
	if err := config.GetDB().Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch service areas",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    areas,
	})
}

// ServiceAreaRequest represents the request body for adding a service area
type ServiceAreaRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

// AddServiceArea handles POST /api/system-settings/service-areas (admin only)
func AddServiceArea(c *gin.Context) {
	var req ServiceAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Area name is required",
			},
		})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	area := models.ServiceArea{Name: req.Name, Active: active}

	if err := config.GetDB().Create(&area).Error; err != nil {
		if isDuplicateError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AREA_EXISTS",
					"message": "A service area with this name already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add service area",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    area,
	})
}

// UpdateServiceArea handles PATCH /api/system-settings/service-areas/:areaId (admin only)
func UpdateServiceArea(c *gin.Context) {
	var req struct {
		Name   *string `json:"name"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
			},
		})
		return
	}

	db := config.GetDB()
	var area models.ServiceArea
	if err := db.First(&area, c.Param("areaId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AREA_NOT_FOUND",
				"message": "Service area not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) > 0 {
		if err := db.Model(&area).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update service area",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    area,
	})
}

// DeleteServiceArea handles DELETE /api/system-settings/service-areas/:areaId (admin only)
func DeleteServiceArea(c *gin.Context) {
	db := config.GetDB()
	var area models.ServiceArea
	if err := db.First(&area, c.Param("areaId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "AREA_NOT_FOUND",
				"message": "Service area not found",
			},
		})
		return
	}

	if err := db.Delete(&area).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete service area",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Service area deleted successfully",
		},
	})
}
