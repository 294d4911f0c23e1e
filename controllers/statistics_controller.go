package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/models"
)

// GetQuickStats handles GET /api/statistics/quick-stats - dashboard
// headline numbers (admin only)
func GetQuickStats(c *gin.Context) {
	db := config.GetDB()

	var totalOrders, pendingPickups, activeDrivers int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		statsError(c)
		return
	}
	if err := db.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&pendingPickups).Error; err != nil {
		statsError(c)
		return
	}
	if err := db.Model(&models.Driver{}).Where("status = ?", models.DriverActive).Count(&activeDrivers).Error; err != nil {
		statsError(c)
		return
	}

	startOfToday := time.Now().Truncate(24 * time.Hour)
	endOfToday := startOfToday.Add(24*time.Hour - time.Nanosecond)

	var revenueToday float64
	row := db.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ? AND status <> ?", startOfToday, endOfToday, models.StatusCancelled).
		Select("COALESCE(SUM(total_price), 0)").Row()
	if err := row.Scan(&revenueToday); err != nil {
		statsError(c)
		return
	}

	quickStats := []gin.H{
		{"label": "Total Orders", "value": fmt.Sprintf("%d", totalOrders), "icon": "cart"},
		{"label": "Pending Pickups", "value": fmt.Sprintf("%d", pendingPickups), "icon": "time"},
		{"label": "Active Drivers", "value": fmt.Sprintf("%d", activeDrivers), "icon": "car"},
		{"label": "Revenue Today", "value": fmt.Sprintf("$%.2f", revenueToday), "icon": "cash"},
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quickStats,
	})
}

func statsError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Failed to fetch statistics",
		},
	})
}
