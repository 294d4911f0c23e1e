package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/config"
	"github.com/ningi265/quickspin/logger"
	"github.com/ningi265/quickspin/middleware"
	"github.com/ningi265/quickspin/models"
	"github.com/ningi265/quickspin/services"
	"github.com/ningi265/quickspin/utils"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

var log = logger.New("quickspin-api")

// deliveryHour is the fixed hour of day orders are delivered at
const deliveryHour = 14

// LocationRequest is the pickup address in an order request
type LocationRequest struct {
	Address   string  `json:"address" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ItemRequest is a physical garment declared in an order request
type ItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Weight   float64 `json:"weight"`
}

// CreateOrderRequest represents the request body for scheduling a pickup
type CreateOrderRequest struct {
	Services            []services.LineItemRequest `json:"services" binding:"required,min=1,dive"`
	PickupDate          time.Time                  `json:"pickupDate" binding:"required"`
	PickupTimeSlot      string                     `json:"pickupTimeSlot" binding:"required"`
	Location            LocationRequest            `json:"location" binding:"required"`
	SpecialInstructions string                     `json:"specialInstructions"`
	Items               []ItemRequest              `json:"items" binding:"omitempty,dive"`
}

// CreateOrder handles POST /api/orders - schedules a pickup.
// Pricing is resolved from the service catalog, the order and its tracking
// timeline are persisted in one transaction, and a QR pickup code is minted.
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
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

	lineItems, totalPrice, err := services.ResolveLineItems(db, req.Services)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_NOT_FOUND",
					"message": err.Error(),
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to resolve services",
			},
		})
		return
	}

	orderID := utils.GenerateOrderID()
	qrPayload := utils.GenerateQRPayload(orderID)

	qrImage, err := services.GenerateQRDataURL(qrPayload)
	if err != nil {
		log.Warning("QR image generation failed", logger.String("orderId", orderID), logger.Error(err))
		qrImage = ""
	}

	// Next-day delivery at a fixed hour
	d := req.PickupDate.AddDate(0, 0, 1)
	deliveryDate := time.Date(d.Year(), d.Month(), d.Day(), deliveryHour, 0, 0, 0, d.Location())

	items := make([]models.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = models.OrderItem{Name: it.Name, Quantity: it.Quantity, Weight: it.Weight}
	}

	order := models.Order{
		OrderID:    orderID,
		CustomerID: userID,
		Services:   lineItems,
		Items:      items,
		TotalPrice: totalPrice,
		Status:     models.StatusPending,
		Progress:   25,
		PickupDate: req.PickupDate,
		PickupTimeSlot: req.PickupTimeSlot,
		DeliveryDate:      deliveryDate,
		EstimatedDelivery: "Tomorrow, 2:00 PM",
		Location: models.Location{
			Address:   req.Location.Address,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		},
		SpecialInstructions: req.SpecialInstructions,
		QRCode:              qrPayload,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		_, err := services.SeedTimeline(tx, order.ID)
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// Archive the QR image when a bucket is configured; the order stands
	// either way
	if s3 := services.GetS3Service(); s3 != nil && qrImage != "" {
		if png, pngErr := services.GenerateQRPNG(qrPayload); pngErr == nil {
			key := fmt.Sprintf("qr-codes/qr-%s.png", orderID)
			if upErr := s3.UploadQRImage(key, png); upErr != nil {
				log.Warning("QR image archive failed", logger.String("orderId", orderID), logger.Error(upErr))
			}
		}
	}

	ctx := c.Request.Context()
	services.Notify(ctx, log, services.AdminChannel, services.EventNewOrder, gin.H{
		"orderId":    order.OrderID,
		"customerId": order.CustomerID,
		"totalPrice": order.TotalPrice,
		"status":     order.Status,
		"pickupDate": order.PickupDate,
	})
	services.Notify(ctx, log, services.CustomerChannel(userID), services.EventOrderUpdate, gin.H{
		"orderId":  order.OrderID,
		"status":   order.Status,
		"progress": order.Progress,
		"message":  "Your pickup has been scheduled",
	})

	log.Info("order created",
		logger.String("orderId", order.OrderID),
		logger.Uint("customerId", userID),
	)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"order":       order,
			"qrCodeData":  qrPayload,
			"qrCodeImage": qrImage,
		},
	})
}

// GetOrders handles GET /api/orders - lists the caller's own orders with
// pagination, search and status filtering
func GetOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	db := config.GetDB()

	query := db.Model(&models.Order{}).Where("customer_id = ?", userID)
	query = applyOrderFilters(c, query)

	listOrders(c, query)
}

// GetAllOrders handles GET /api/orders/all - lists every order across all
// customers (admin only), with driver and date-range filters on top of the
// standard ones
func GetAllOrders(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Order{})
	query = applyOrderFilters(c, query)

	if driverID := c.Query("driverId"); driverID != "" {
		query = query.Where("driver_id = ?", driverID)
	}
	if from := c.Query("dateFrom"); from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to := c.Query("dateTo"); to != "" {
		query = query.Where("created_at <= ?", to)
	}

	listOrders(c, query)
}

func applyOrderFilters(c *gin.Context, query *gorm.DB) *gorm.DB {
	if search := c.Query("search"); search != "" {
		query = query.Where("order_id LIKE ?", "%"+search+"%")
	}
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	return query
}

func listOrders(c *gin.Context, query *gorm.DB) {
	page := cast.ToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := cast.ToInt(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	var orders []models.Order
	err := query.
		Preload("Services").
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"pagination": gin.H{
			"totalPages":  totalPages,
			"currentPage": page,
			"total":       total,
			"hasNext":     int64(page) < totalPages,
			"hasPrev":     page > 1,
		},
	})
}

// GetOrderByID handles GET /api/orders/:id - returns one order with its
// tracking timeline. Customers can only fetch their own orders.
func GetOrderByID(c *gin.Context) {
	db := config.GetDB()

	query := db.Preload("Services").Preload("Items")
	if !middleware.IsAdmin(c) {
		query = query.Where("customer_id = ?", middleware.GetUserID(c))
	}

	var order models.Order
	if err := query.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	tracking, err := services.LoadTimeline(db, order.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
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
		"data": gin.H{
			"order":    order,
			"tracking": tracking,
		},
	})
}

// UpdateOrderStatusRequest is a partial update of an order's lifecycle state
type UpdateOrderStatusRequest struct {
	Status   *models.OrderStatus `json:"status"`
	Progress *int                `json:"progress"`
	DriverID *uint               `json:"driverId"`
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status.
// Status changes must move forward along the lifecycle (cancel excepted),
// the update is guarded by an optimistic lock, and the tracking timeline
// advances in the same transaction.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
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
	if req.Status == nil && req.Progress == nil && req.DriverID == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Nothing to update",
			},
		})
		return
	}

	db := config.GetDB()

	query := db.Preload("Services")
	switch middleware.GetRole(c) {
	case models.RoleAdmin:
		// admins may update any order
	case models.RoleDriver:
		query = query.Where("driver_id = ?", middleware.GetUserID(c))
	default:
		query = query.Where("customer_id = ?", middleware.GetUserID(c))
	}

	var order models.Order
	if err := query.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	updates := map[string]interface{}{"version": order.Version + 1}
	if req.Status != nil {
		if err := models.CanTransition(order.Status, *req.Status); err != nil {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_STATUS_TRANSITION",
					"message": err.Error(),
				},
			})
			return
		}
		updates["status"] = *req.Status
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.DriverID != nil {
		updates["driver_id"] = *req.DriverID
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStaleOrder
		}
		if req.Status != nil {
			if step := models.StepForStatus(*req.Status); step != "" {
				if err := services.AdvanceStep(tx, order.ID, step, ""); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errStaleOrder) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VERSION_CONFLICT",
					"message": "Order was modified concurrently, please retry",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if err := db.Preload("Services").Preload("Items").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated order",
			},
		})
		return
	}

	ctx := c.Request.Context()
	services.Notify(ctx, log, services.AdminChannel, services.EventOrderStatusUpdated, gin.H{
		"orderId":  order.OrderID,
		"status":   order.Status,
		"progress": order.Progress,
		"driverId": order.DriverID,
	})
	services.Notify(ctx, log, services.CustomerChannel(order.CustomerID), services.EventOrderUpdate, gin.H{
		"orderId":  order.OrderID,
		"status":   order.Status,
		"progress": order.Progress,
	})
	if req.DriverID != nil {
		services.Notify(ctx, log, services.DriverChannel(*req.DriverID), services.EventOrderAssigned, gin.H{
			"orderId":       order.OrderID,
			"pickupDate":    order.PickupDate,
			"pickupAddress": order.Location.Address,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

var errStaleOrder = errors.New("order version is stale")

// VerifyQRRequest represents the request body for QR pickup verification
type VerifyQRRequest struct {
	QRData string `json:"qrData" binding:"required"`
}

// VerifyQRCode handles POST /api/orders/verify-qr - a driver scans the
// customer's QR code to confirm physical pickup. The token is one-time use:
// a second verification always fails with a conflict.
func VerifyQRCode(c *gin.Context) {
	driverID := middleware.GetUserID(c)

	var req VerifyQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "QR code data is required",
			},
		})
		return
	}

	db := config.GetDB()

	var order models.Order
	err := db.Preload("Customer").Preload("Services").
		Where("qr_code = ?", req.QRData).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_QR",
				"message": "Invalid QR code or order not found",
			},
		})
		return
	}

	if order.QRVerified {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "QR_ALREADY_USED",
				"message": "QR code already used",
			},
		})
		return
	}

	// Verification moves the order to picked_up, so the same lifecycle rules
	// apply as on a status patch: cancelled and delivered orders stay put
	if err := models.CanTransition(order.Status, models.StatusPickedUp); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS_TRANSITION",
				"message": err.Error(),
			},
		})
		return
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		// The qr_verified guard makes the one-time-use check atomic even
		// when two drivers scan simultaneously; the status guard keeps a
		// concurrent cancel from being overwritten
		res := tx.Model(&models.Order{}).
			Where("id = ? AND qr_verified = ? AND status IN ?", order.ID, false,
				[]models.OrderStatus{models.StatusPending, models.StatusConfirmed}).
			Updates(map[string]interface{}{
				"status":         models.StatusPickedUp,
				"progress":       50,
				"qr_verified":    true,
				"qr_verified_at": now,
				"qr_verified_by": driverID,
				"version":        order.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errQRUsed
		}
		description := fmt.Sprintf("Items collected by driver at %s", now.Format("Jan 2, 2006 3:04 PM"))
		return services.AdvanceStep(tx, order.ID, models.StepItemsCollected, description)
	})
	if err != nil {
		if errors.Is(err, errQRUsed) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "QR_ALREADY_USED",
					"message": "QR code already used",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to verify pickup",
			},
		})
		return
	}

	ctx := c.Request.Context()
	services.Notify(ctx, log, services.AdminChannel, services.EventQRVerified, gin.H{
		"orderId":    order.OrderID,
		"driverId":   driverID,
		"verifiedAt": now,
	})
	services.Notify(ctx, log, services.CustomerChannel(order.CustomerID), services.EventOrderPickedUp, gin.H{
		"orderId":  order.OrderID,
		"status":   models.StatusPickedUp,
		"progress": 50,
	})

	log.Info("QR pickup verified",
		logger.String("orderId", order.OrderID),
		logger.Uint("driverId", driverID),
	)

	// Redacted summary: enough for the driver to confirm the pickup,
	// nothing more
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":         "Pickup verified successfully",
			"orderId":         order.OrderID,
			"customerName":    order.Customer.Name,
			"customerAddress": order.Customer.Address,
			"customerPhone":   order.Customer.PhoneNumber,
			"services":        order.Services,
		},
	})
}

var errQRUsed = errors.New("qr code already used")

// GetOrderStatus handles GET /api/orders/status/:orderId - a redacted
// status summary looked up by the human-readable order id
func GetOrderStatus(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.Where("order_id = ?", c.Param("orderId")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"orderId":        order.OrderID,
			"status":         order.Status,
			"progress":       order.Progress,
			"pickupVerified": order.QRVerified,
			"verifiedAt":     order.QRVerifiedAt,
			"createdAt":      order.CreatedAt,
		},
	})
}
