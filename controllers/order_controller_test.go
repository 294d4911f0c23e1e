package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ningi265/quickspin/models"
	"github.com/ningi265/quickspin/services"
	"github.com/ningi265/quickspin/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrderControllerTestSuite covers order creation, listing, status updates
// and QR pickup verification
type OrderControllerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	sink     *services.RecorderSink
	customer models.User
	driver   models.User
	admin    models.User
	wash     models.Service
	iron     models.Service
}

func (suite *OrderControllerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
}

func (suite *OrderControllerTestSuite) SetupTest() {
	suite.db = testutil.SetupTestDB(suite.T())

	suite.sink = services.NewRecorderSink()
	suite.sink.SetAsSinkForTesting()
	services.SetS3Service(nil)

	suite.customer = testutil.CreateTestUser(suite.T(), suite.db, "order-customer", models.RoleCustomer)
	suite.driver = testutil.CreateTestUser(suite.T(), suite.db, "order-driver", models.RoleDriver)
	suite.admin = testutil.CreateTestUser(suite.T(), suite.db, "order-admin", models.RoleAdmin)

	suite.wash = testutil.SeedService(suite.T(), suite.db, "Wash & Fold", 2.50)
	suite.iron = testutil.SeedService(suite.T(), suite.db, "Ironing", 4.00)
}

func (suite *OrderControllerTestSuite) TearDownTest() {
	services.SetNotificationSink(services.NoopSink{})
	testutil.CloseTestDB(suite.db)
}

// routerAs mounts the order routes behind a mocked authentication for the
// given user
func (suite *OrderControllerTestSuite) routerAs(user models.User) *gin.Engine {
	router := gin.New()
	auth := testutil.MockAuthMiddleware(user)
	api := router.Group("/api")
	{
		api.POST("/orders", auth, CreateOrder)
		api.GET("/orders", auth, GetOrders)
		api.GET("/orders/all", auth, GetAllOrders)
		api.GET("/orders/status/:orderId", auth, GetOrderStatus)
		api.GET("/orders/:id", auth, GetOrderByID)
		api.PATCH("/orders/:id/status", auth, UpdateOrderStatus)
		api.POST("/orders/verify-qr", auth, VerifyQRCode)
	}
	return router
}

func (suite *OrderControllerTestSuite) createOrderBody() map[string]interface{} {
	return map[string]interface{}{
		"services": []map[string]interface{}{
			{"serviceId": suite.wash.ID, "quantity": 4},
			{"serviceId": suite.iron.ID, "quantity": 2},
		},
		"pickupDate":     time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"pickupTimeSlot": "09:00 - 11:00",
		"location": map[string]interface{}{
			"address":   "12 Test Street",
			"latitude":  -13.96,
			"longitude": 33.77,
		},
		"specialInstructions": "Ring the bell twice",
	}
}

// createOrder posts a default order as the suite customer and returns the
// decoded response data
func (suite *OrderControllerTestSuite) createOrder() map[string]interface{} {
	body, _ := json.Marshal(suite.createOrderBody())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response["success"].(bool))
	return response["data"].(map[string]interface{})
}

func (suite *OrderControllerTestSuite) TestCreateOrder_PricingAndDefaults() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})

	// 4kg * 2.50 + 2kg * 4.00
	assert.Equal(suite.T(), 18.00, order["totalPrice"])
	assert.Equal(suite.T(), "pending", order["status"])
	assert.Equal(suite.T(), float64(25), order["progress"])
	assert.Equal(suite.T(), float64(suite.customer.ID), order["customerId"])
	assert.Equal(suite.T(), "Tomorrow, 2:00 PM", order["estimatedDelivery"])

	orderID := order["orderId"].(string)
	assert.True(suite.T(), strings.HasPrefix(orderID, "ORD-"))
	assert.Len(suite.T(), orderID, len("ORD-")+9)

	// Line items snapshot name and unit price from the catalog
	lineItems := order["services"].([]interface{})
	assert.Len(suite.T(), lineItems, 2)
	first := lineItems[0].(map[string]interface{})
	assert.Equal(suite.T(), "Wash & Fold", first["name"])
	assert.Equal(suite.T(), 2.50, first["price"])

	// The QR payload is embedded in the order and returned with the image
	qrData := data["qrCodeData"].(string)
	assert.True(suite.T(), strings.HasPrefix(qrData, "QUICKSPIN_"+orderID+"_"))
	assert.Equal(suite.T(), qrData, order["qrCode"])
	assert.True(suite.T(), strings.HasPrefix(data["qrCodeImage"].(string), "data:image/png;base64,"))
}

func (suite *OrderControllerTestSuite) TestCreateOrder_SeedsTimeline() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := uint(order["id"].(float64))

	tracking, err := services.LoadTimeline(suite.db, id)
	suite.NoError(err)
	assert.Len(suite.T(), tracking.Steps, 6)
	assert.Equal(suite.T(), models.StepPickupScheduled, tracking.CurrentStep)

	completed := 0
	for _, step := range tracking.Steps {
		if step.Completed {
			completed++
			assert.NotNil(suite.T(), step.Time)
		}
	}
	assert.Equal(suite.T(), 2, completed)
	assert.True(suite.T(), tracking.Steps[0].Completed, "Order Placed should be completed")
	assert.True(suite.T(), tracking.Steps[1].Completed, "Pickup Scheduled should be completed")
	assert.False(suite.T(), tracking.Steps[2].Completed)
}

func (suite *OrderControllerTestSuite) TestCreateOrder_NotifiesAdminAndCustomer() {
	suite.createOrder()

	adminEvents := suite.sink.EventsFor(services.AdminChannel)
	suite.Require().Len(adminEvents, 1)
	assert.Equal(suite.T(), services.EventNewOrder, adminEvents[0].Event)

	customerEvents := suite.sink.EventsFor(services.CustomerChannel(suite.customer.ID))
	suite.Require().Len(customerEvents, 1)
	assert.Equal(suite.T(), services.EventOrderUpdate, customerEvents[0].Event)
}

func (suite *OrderControllerTestSuite) TestCreateOrder_ArchivesQRImage() {
	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()

	data := suite.createOrder()
	order := data["order"].(map[string]interface{})

	keys := mockS3.UploadedKeys()
	suite.Require().Len(keys, 1)
	assert.Equal(suite.T(), fmt.Sprintf("qr-codes/qr-%s.png", order["orderId"]), keys[0])
}

func (suite *OrderControllerTestSuite) TestCreateOrder_UnknownService() {
	body := suite.createOrderBody()
	body["services"] = []map[string]interface{}{
		{"serviceId": 9999, "quantity": 1},
	}
	bodyJSON, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "SERVICE_NOT_FOUND", errorData["code"])
}

func (suite *OrderControllerTestSuite) TestCreateOrder_UnavailableService() {
	suite.db.Model(&suite.iron).Update("available", false)

	body, _ := json.Marshal(suite.createOrderBody())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *OrderControllerTestSuite) TestCreateOrder_MissingFields() {
	body, _ := json.Marshal(map[string]interface{}{
		"pickupTimeSlot": "09:00 - 11:00",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "VALIDATION_ERROR", errorData["code"])
}

func (suite *OrderControllerTestSuite) TestGetOrders_OwnOrdersOnly() {
	suite.createOrder()

	other := testutil.CreateTestUser(suite.T(), suite.db, "other-customer", models.RoleCustomer)
	otherOrder := models.Order{
		OrderID:        "ORD-000000001",
		CustomerID:     other.ID,
		TotalPrice:     10,
		Status:         models.StatusPending,
		PickupDate:     time.Now(),
		PickupTimeSlot: "09:00 - 11:00",
		Location:       models.Location{Address: "99 Other Road"},
		QRCode:         "QUICKSPIN_ORD-000000001_1",
	}
	suite.NoError(suite.db.Create(&otherOrder).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	orders := response["data"].([]interface{})
	suite.Require().Len(orders, 1)
	assert.Equal(suite.T(), float64(suite.customer.ID), orders[0].(map[string]interface{})["customerId"])

	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), pagination["total"])
	assert.Equal(suite.T(), float64(1), pagination["currentPage"])
}

func (suite *OrderControllerTestSuite) TestGetOrders_FiltersApply() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := int(order["id"].(float64))
	suite.NoError(suite.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", models.StatusDelivered).Error)
	suite.createOrder()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=delivered", nil)
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	orders := response["data"].([]interface{})
	suite.Require().Len(orders, 1)
	assert.Equal(suite.T(), "delivered", orders[0].(map[string]interface{})["status"])

	pagination := response["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), pagination["total"], "count honours the same filters")

	// Search narrows by the human-readable order id
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/orders?search="+order["orderId"].(string), nil)
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response["data"].([]interface{}), 1)
}

func (suite *OrderControllerTestSuite) TestGetAllOrders_SeesEveryCustomer() {
	suite.createOrder()

	other := testutil.CreateTestUser(suite.T(), suite.db, "other-customer", models.RoleCustomer)
	otherOrder := models.Order{
		OrderID:        "ORD-000000002",
		CustomerID:     other.ID,
		TotalPrice:     10,
		Status:         models.StatusDelivered,
		PickupDate:     time.Now(),
		PickupTimeSlot: "09:00 - 11:00",
		Location:       models.Location{Address: "99 Other Road"},
		QRCode:         "QUICKSPIN_ORD-000000002_1",
	}
	suite.NoError(suite.db.Create(&otherOrder).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/all", nil)
	suite.routerAs(suite.admin).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response["data"].([]interface{}), 2)

	// Status filter narrows the result
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/orders/all?status=delivered", nil)
	suite.routerAs(suite.admin).ServeHTTP(w, req)

	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	orders := response["data"].([]interface{})
	suite.Require().Len(orders, 1)
	assert.Equal(suite.T(), "delivered", orders[0].(map[string]interface{})["status"])
}

func (suite *OrderControllerTestSuite) TestGetOrderByID_ForeignOrderHidden() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := int(order["id"].(float64))

	other := testutil.CreateTestUser(suite.T(), suite.db, "other-customer", models.RoleCustomer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
	suite.routerAs(other).ServeHTTP(w, req)

	// Existence is not leaked to other customers
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// The owner and admins see it
	for _, caller := range []models.User{suite.customer, suite.admin} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
		suite.routerAs(caller).ServeHTTP(w, req)
		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var response map[string]interface{}
		suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
		payload := response["data"].(map[string]interface{})
		assert.NotNil(suite.T(), payload["order"])
		assert.NotNil(suite.T(), payload["tracking"])
	}
}

func (suite *OrderControllerTestSuite) TestUpdateOrderStatus_AdvancesTimeline() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := int(order["id"].(float64))

	body, _ := json.Marshal(map[string]interface{}{
		"status":   "confirmed",
		"progress": 30,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", id), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.admin).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	var updated models.Order
	suite.NoError(suite.db.First(&updated, id).Error)
	assert.Equal(suite.T(), models.StatusConfirmed, updated.Status)
	assert.Equal(suite.T(), 30, updated.Progress)
	assert.Equal(suite.T(), 2, updated.Version)

	// Moving to in_progress completes the matching timeline step
	body, _ = json.Marshal(map[string]interface{}{"status": "in_progress"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", id), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.admin).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	tracking, err := services.LoadTimeline(suite.db, uint(id))
	suite.NoError(err)
	assert.Equal(suite.T(), models.StepInProcessing, tracking.CurrentStep)
	for _, step := range tracking.Steps {
		if step.Step == models.StepInProcessing {
			assert.True(suite.T(), step.Completed)
		}
	}
}

func (suite *OrderControllerTestSuite) TestUpdateOrderStatus_BackwardsRejected() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := int(order["id"].(float64))

	suite.NoError(suite.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", models.StatusInProgress).Error)

	body, _ := json.Marshal(map[string]interface{}{"status": "confirmed"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", id), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.admin).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_STATUS_TRANSITION", errorData["code"])

	var unchanged models.Order
	suite.NoError(suite.db.First(&unchanged, id).Error)
	assert.Equal(suite.T(), models.StatusInProgress, unchanged.Status)
}

func (suite *OrderControllerTestSuite) TestUpdateOrderStatus_CancelFromTerminalRejected() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := int(order["id"].(float64))

	suite.NoError(suite.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", models.StatusDelivered).Error)

	body, _ := json.Marshal(map[string]interface{}{"status": "cancelled"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", id), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.admin).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *OrderControllerTestSuite) TestUpdateOrderStatus_AssignDriverNotifies() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := int(order["id"].(float64))
	suite.sink.Reset()

	body, _ := json.Marshal(map[string]interface{}{
		"status":   "confirmed",
		"driverId": suite.driver.ID,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", id), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.admin).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	driverEvents := suite.sink.EventsFor(services.DriverChannel(suite.driver.ID))
	suite.Require().Len(driverEvents, 1)
	assert.Equal(suite.T(), services.EventOrderAssigned, driverEvents[0].Event)

	customerEvents := suite.sink.EventsFor(services.CustomerChannel(suite.customer.ID))
	suite.Require().Len(customerEvents, 1)
	assert.Equal(suite.T(), services.EventOrderUpdate, customerEvents[0].Event)
}

func (suite *OrderControllerTestSuite) TestUpdateOrderStatus_StaleVersionConflicts() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	id := int(order["id"].(float64))

	// Simulate a concurrent writer bumping the version after our read
	suite.NoError(suite.db.Model(&models.Order{}).Where("id = ?", id).
		Update("version", gorm.Expr("version + 1")).Error)

	// The handler reads the order inside the request, so force staleness by
	// bumping version between the read and the write is not observable here;
	// instead verify the CAS column itself.
	res := suite.db.Model(&models.Order{}).
		Where("id = ? AND version = ?", id, 1).
		Update("status", models.StatusConfirmed)
	suite.NoError(res.Error)
	assert.Equal(suite.T(), int64(0), res.RowsAffected)
}

func (suite *OrderControllerTestSuite) TestVerifyQR_HappyPath() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	qrData := data["qrCodeData"].(string)
	suite.sink.Reset()

	body, _ := json.Marshal(map[string]interface{}{"qrData": qrData})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/verify-qr", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.driver).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.True(response["success"].(bool))

	// Redacted summary: the driver gets pickup essentials, not the full order
	payload := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), order["orderId"], payload["orderId"])
	assert.Equal(suite.T(), suite.customer.Name, payload["customerName"])
	assert.Equal(suite.T(), suite.customer.Address, payload["customerAddress"])
	assert.Equal(suite.T(), suite.customer.PhoneNumber, payload["customerPhone"])
	assert.NotNil(suite.T(), payload["services"])
	assert.NotContains(suite.T(), payload, "totalPrice")
	assert.NotContains(suite.T(), payload, "qrCode")

	var updated models.Order
	suite.NoError(suite.db.First(&updated, uint(order["id"].(float64))).Error)
	assert.Equal(suite.T(), models.StatusPickedUp, updated.Status)
	assert.Equal(suite.T(), 50, updated.Progress)
	assert.True(suite.T(), updated.QRVerified)
	assert.NotNil(suite.T(), updated.QRVerifiedAt)
	assert.Equal(suite.T(), suite.driver.ID, *updated.QRVerifiedBy)

	tracking, err := services.LoadTimeline(suite.db, updated.ID)
	suite.NoError(err)
	assert.Equal(suite.T(), models.StepItemsCollected, tracking.CurrentStep)
	for _, step := range tracking.Steps {
		if step.Step == models.StepItemsCollected {
			assert.True(suite.T(), step.Completed)
			assert.Contains(suite.T(), step.Description, "Items collected by driver")
		}
	}

	adminEvents := suite.sink.EventsFor(services.AdminChannel)
	suite.Require().Len(adminEvents, 1)
	assert.Equal(suite.T(), services.EventQRVerified, adminEvents[0].Event)

	customerEvents := suite.sink.EventsFor(services.CustomerChannel(suite.customer.ID))
	suite.Require().Len(customerEvents, 1)
	assert.Equal(suite.T(), services.EventOrderPickedUp, customerEvents[0].Event)
}

func (suite *OrderControllerTestSuite) TestVerifyQR_OneTimeUse() {
	data := suite.createOrder()
	qrData := data["qrCodeData"].(string)

	body, _ := json.Marshal(map[string]interface{}{"qrData": qrData})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/verify-qr", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.driver).ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Second scan always conflicts
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/orders/verify-qr", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.driver).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "QR_ALREADY_USED", errorData["code"])
}

func (suite *OrderControllerTestSuite) TestVerifyQR_TerminalOrderRejected() {
	// A scan must not revive an order that already left the active lifecycle
	for _, status := range []models.OrderStatus{models.StatusCancelled, models.StatusDelivered} {
		data := suite.createOrder()
		order := data["order"].(map[string]interface{})
		id := int(order["id"].(float64))
		qrData := data["qrCodeData"].(string)

		suite.NoError(suite.db.Model(&models.Order{}).Where("id = ?", id).
			Update("status", status).Error)

		body, _ := json.Marshal(map[string]interface{}{"qrData": qrData})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders/verify-qr", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		suite.routerAs(suite.driver).ServeHTTP(w, req)

		assert.Equal(suite.T(), http.StatusConflict, w.Code, w.Body.String())

		var response map[string]interface{}
		suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(suite.T(), "INVALID_STATUS_TRANSITION", errorData["code"])

		// The order stays where it was and the token stays unused
		var unchanged models.Order
		suite.NoError(suite.db.First(&unchanged, id).Error)
		assert.Equal(suite.T(), status, unchanged.Status)
		assert.False(suite.T(), unchanged.QRVerified)
	}
}

func (suite *OrderControllerTestSuite) TestVerifyQR_UnknownToken() {
	body, _ := json.Marshal(map[string]interface{}{"qrData": "QUICKSPIN_ORD-999999999_1"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/verify-qr", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	suite.routerAs(suite.driver).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_QR", errorData["code"])
}

func (suite *OrderControllerTestSuite) TestGetOrderStatus_RedactedSummary() {
	data := suite.createOrder()
	order := data["order"].(map[string]interface{})
	orderID := order["orderId"].(string)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders/status/"+orderID, nil)
	suite.routerAs(suite.customer).ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	payload := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), orderID, payload["orderId"])
	assert.Equal(suite.T(), "pending", payload["status"])
	assert.Equal(suite.T(), false, payload["pickupVerified"])
	assert.NotContains(suite.T(), payload, "qrCode")
	assert.NotContains(suite.T(), payload, "totalPrice")
}

func TestOrderControllerSuite(t *testing.T) {
	suite.Run(t, new(OrderControllerTestSuite))
}
