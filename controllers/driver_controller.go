package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/models"
	"github.com/spf13/cast"
)

// GetDrivers handles GET /api/drivers - lists drivers with filtering and
// pagination (admin only)
func GetDrivers(c *gin.Context) {
	db := config.GetDB()

	page := cast.ToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := cast.ToInt(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.Model(&models.Driver{}).Where("is_active = ?", true)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR phone LIKE ? OR vehicle_license_plate LIKE ? OR vehicle_model LIKE ?",
			like, like, like, like, like,
		)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	sortBy := c.DefaultQuery("sortBy", "created_at")
	switch sortBy {
	case "name", "rating", "deliveries", "status", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if c.DefaultQuery("sortOrder", "desc") == "asc" {
		sortOrder = "ASC"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count drivers",
			},
		})
		return
	}

	var drivers []models.Driver
	err := query.
		Order(sortBy + " " + sortOrder).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&drivers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch drivers",
			},
		})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    drivers,
		"pagination": gin.H{
			"totalPages":  totalPages,
			"currentPage": page,
			"total":       total,
			"hasNext":     int64(page) < totalPages,
			"hasPrev":     page > 1,
		},
	})
}

// GetDriverByID handles GET /api/drivers/:id (admin only)
func GetDriverByID(c *gin.Context) {
	var driver models.Driver
	if err := config.GetDB().First(&driver, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DRIVER_NOT_FOUND",
				"message": "Driver not found",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    driver,
	})
}

// CreateDriverRequest represents the request body for registering a driver
type CreateDriverRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	VehicleModel string `json:"vehicleModel" binding:"required"`
	LicensePlate string `json:"licensePlate" binding:"required"`
	VehicleColor string `json:"vehicleColor"`
	VehicleYear  int    `json:"vehicleYear"`
}

// CreateDriver handles POST /api/drivers (admin only)
func CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
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

	var existing models.Driver
	err := db.Where("email = ? OR phone = ? OR vehicle_license_plate = ?",
		req.Email, req.Phone, req.LicensePlate).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DRIVER_EXISTS",
				"message": "Driver with this email, phone or license plate already exists",
			},
		})
		return
	}

	driver := models.Driver{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Vehicle: models.Vehicle{
			Model:        req.VehicleModel,
			LicensePlate: req.LicensePlate,
			Color:        req.VehicleColor,
			Year:         req.VehicleYear,
		},
		Status:   models.DriverOffline,
		IsActive: true,
	}

	if err := db.Create(&driver).Error; err != nil {
		if isDuplicateError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DRIVER_EXISTS",
					"message": "Driver with this email, phone or license plate already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create driver",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    driver,
	})
}

// UpdateDriverRequest is a partial update of driver details
type UpdateDriverRequest struct {
	Name         *string  `json:"name"`
	Email        *string  `json:"email"`
	Phone        *string  `json:"phone"`
	VehicleModel *string  `json:"vehicleModel"`
	LicensePlate *string  `json:"licensePlate"`
	VehicleColor *string  `json:"vehicleColor"`
	VehicleYear  *int     `json:"vehicleYear"`
	Rating       *float64 `json:"rating"`
}

// UpdateDriver handles PATCH /api/drivers/:id (admin only)
func UpdateDriver(c *gin.Context) {
	var req UpdateDriverRequest
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
	var driver models.Driver
	if err := db.First(&driver, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DRIVER_NOT_FOUND",
				"message": "Driver not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.VehicleModel != nil {
		updates["vehicle_model"] = *req.VehicleModel
	}
	if req.LicensePlate != nil {
		updates["vehicle_license_plate"] = *req.LicensePlate
	}
	if req.VehicleColor != nil {
		updates["vehicle_color"] = *req.VehicleColor
	}
	if req.VehicleYear != nil {
		updates["vehicle_year"] = *req.VehicleYear
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    driver,
		})
		return
	}

	if err := db.Model(&driver).Updates(updates).Error; err != nil {
		if isDuplicateError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DRIVER_EXISTS",
					"message": "Driver with this email or license plate already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update driver",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    driver,
	})
}

// UpdateDriverStatusRequest changes driver availability
type UpdateDriverStatusRequest struct {
	Status models.DriverStatus `json:"status" binding:"required"`
}

// UpdateDriverStatus handles PATCH /api/drivers/:id/status (admin only)
func UpdateDriverStatus(c *gin.Context) {
	var req UpdateDriverStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidDriverStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status must be active, offline, or on-delivery",
			},
		})
		return
	}

	db := config.GetDB()
	var driver models.Driver
	if err := db.First(&driver, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DRIVER_NOT_FOUND",
				"message": "Driver not found",
			},
		})
		return
	}

	if err := db.Model(&driver).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update driver status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    driver,
	})
}

// DeleteDriver handles DELETE /api/drivers/:id (admin only). Soft delete:
// the driver row stays so past orders keep their reference.
func DeleteDriver(c *gin.Context) {
	db := config.GetDB()
	var driver models.Driver
	if err := db.First(&driver, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DRIVER_NOT_FOUND",
				"message": "Driver not found",
			},
		})
		return
	}

	if err := db.Model(&driver).Updates(map[string]interface{}{
		"is_active": false,
		"status":    models.DriverOffline,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete driver",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Driver deleted successfully",
		},
	})
}

// GetDriverStats handles GET /api/drivers/stats (admin only)
func GetDriverStats(c *gin.Context) {
	db := config.GetDB()

	var totalDrivers, activeDrivers int64
	if err := db.Model(&models.Driver{}).Where("is_active = ?", true).Count(&totalDrivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch driver stats",
			},
		})
		return
	}
	if err := db.Model(&models.Driver{}).
		Where("is_active = ? AND status IN ?", true, []models.DriverStatus{models.DriverActive, models.DriverOnDelivery}).
		Count(&activeDrivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch driver stats",
			},
		})
		return
	}

	var totalDeliveries int64
	row := db.Model(&models.Driver{}).Where("is_active = ?", true).Select("COALESCE(SUM(deliveries), 0)").Row()
	if err := row.Scan(&totalDeliveries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch driver stats",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalDrivers":    totalDrivers,
			"activeDrivers":   activeDrivers,
			"totalDeliveries": totalDeliveries,
		},
	})
}
