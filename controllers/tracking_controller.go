package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/middleware"
	"github.com/ningi265/quickspin/models"
	"github.com/ningi265/quickspin/services"
)

// GetTracking handles GET /api/tracking/:orderId - returns the timeline for
// an order. Customers can only read timelines for orders they own.
func GetTracking(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("orderId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRACKING_NOT_FOUND",
				"message": "Tracking not found",
			},
		})
		return
	}

	if !middleware.IsAdmin(c) && order.CustomerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Access denied",
			},
		})
		return
	}

	tracking, err := services.LoadTimeline(db, order.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRACKING_NOT_FOUND",
				"message": "Tracking not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tracking,
	})
}

// UpdateTrackingRequest updates a single timeline step
type UpdateTrackingRequest struct {
	Step      string `json:"step" binding:"required"`
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

// UpdateTracking handles PATCH /api/tracking/:orderId (admin only).
// Completion latches: marking a completed step incomplete is ignored.
func UpdateTracking(c *gin.Context) {
	var req UpdateTrackingRequest
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

	var tracking models.Tracking
	if err := db.Where("order_id = ?", c.Param("orderId")).First(&tracking).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TRACKING_NOT_FOUND",
				"message": "Tracking not found",
			},
		})
		return
	}

	var step models.TrackingStep
	if err := db.Where("tracking_id = ? AND step = ?", tracking.ID, req.Step).First(&step).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STEP_NOT_FOUND",
				"message": "Timeline step not found",
			},
		})
		return
	}

	// Completed steps latch: their status stays "completed" and their time
	// stamp is only written once, at completion
	updates := map[string]interface{}{}
	if req.Status != "" && !step.Completed {
		updates["status"] = req.Status
	}
	if req.Completed && !step.Completed {
		updates["completed"] = true
		updates["status"] = "completed"
		updates["time"] = time.Now()
	}
	if len(updates) > 0 {
		if err := db.Model(&step).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update tracking",
				},
			})
			return
		}
	}

	if req.Completed {
		if err := db.Model(&tracking).Update("current_step", req.Step).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update tracking",
				},
			})
			return
		}
	}

	updated, err := services.LoadTimeline(db, tracking.OrderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load tracking",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}
