package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/session"
)

func newTestClient(t *testing.T, router http.Handler) *api.Client {
	t.Helper()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.API.PathPrefix = "/api/v1"
	cfg.API.Timeout = 5 * time.Second

	sessions := session.NewManager(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return api.New(cfg, sessions, logger)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestFetchRatesMapsQuotes(t *testing.T) {
	router := newRouter()
	router.POST("/api/v1/delivery/rates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": []gin.H{
				{"type": "pickup", "price": 0, "pickup_address": "Vendor hub, Yaba"},
				{"type": "standard", "price": 1800, "courier": "GIG", "estimated_days": "3-5 days",
					"vendors": []gin.H{
						{"vendor_name": "Shoe World", "price": 1000, "courier": "GIG"},
						{"vendor_name": "Bag Place", "price": 800, "courier": "GIG"},
					}},
			},
		})
	})

	svc := NewService(newTestClient(t, router), testLogger())
	options, live := svc.FetchRates(context.Background(), testAddress())

	if !live {
		t.Fatal("FetchRates() live = false, want true")
	}
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if options[0].ID != "pickup--0" || options[1].ID != "standard-GIG-1" {
		t.Fatalf("synthetic ids = %q, %q", options[0].ID, options[1].ID)
	}
	if len(options[1].VendorBreakdown) != 2 {
		t.Fatalf("vendor breakdown size = %d, want 2", len(options[1].VendorBreakdown))
	}
}

func TestFetchRatesFallsBackOnServerError(t *testing.T) {
	router := newRouter()
	router.POST("/api/v1/delivery/rates", func(c *gin.Context) {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "rate provider down"})
	})

	svc := NewService(newTestClient(t, router), testLogger())
	options, live := svc.FetchRates(context.Background(), testAddress())

	if live {
		t.Fatal("FetchRates() live = true, want false")
	}
	assertFallback(t, options)
}

func TestFetchRatesFallsBackOnTransportError(t *testing.T) {
	// Closed server: the request never gets a response
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := &config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.API.PathPrefix = "/api/v1"
	cfg.API.Timeout = time.Second

	sessions := session.NewManager(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))
	client := api.New(cfg, sessions, testLogger())

	svc := NewService(client, testLogger())
	options, live := svc.FetchRates(context.Background(), testAddress())

	if live {
		t.Fatal("FetchRates() live = true, want false")
	}
	assertFallback(t, options)
}

func assertFallback(t *testing.T, options []DeliveryOption) {
	t.Helper()

	if want := FallbackOptions(); !reflect.DeepEqual(options, want) {
		t.Fatalf("options = %+v, want fallback triple %+v", options, want)
	}
}

func TestLoadRatesRequiresAddress(t *testing.T) {
	calls := 0
	router := newRouter()
	router.POST("/api/v1/delivery/rates", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []gin.H{}})
	})

	svc := NewService(newTestClient(t, router), testLogger())
	flow := NewFlow(testCart())

	if err := svc.LoadRates(context.Background(), flow); err != ErrAddressRequired {
		t.Fatalf("LoadRates() error = %v, want ErrAddressRequired", err)
	}
	if calls != 0 {
		t.Fatalf("rate endpoint called %d times without an address, want 0", calls)
	}
}

func TestLoadRatesAutoSelectsPickup(t *testing.T) {
	router := newRouter()
	router.POST("/api/v1/delivery/rates", func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false})
	})

	svc := NewService(newTestClient(t, router), testLogger())
	flow := NewFlow(testCart())
	flow.SelectAddress(testAddress())

	if err := svc.LoadRates(context.Background(), flow); err != nil {
		t.Fatalf("LoadRates() failed: %v", err)
	}
	if flow.LiveRates() {
		t.Fatal("LiveRates() = true after fallback")
	}
	selected := flow.SelectedOption()
	if selected == nil || selected.Type != DeliveryPickup {
		t.Fatalf("auto-selected = %+v, want pickup", selected)
	}
}

func TestSubmitCarriesClientSelectedQuote(t *testing.T) {
	var payload CreateOrderRequest
	var idempotencyKey string

	router := newRouter()
	router.POST("/api/v1/orders", func(c *gin.Context) {
		idempotencyKey = c.GetHeader("X-Idempotency-Key")
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data": gin.H{
				"order": gin.H{
					"id":           42,
					"order_number": "ORD-1001",
					"status":       "pending",
					"total_amount": 4300,
				},
			},
		})
	})

	svc := NewService(newTestClient(t, router), testLogger())

	c := testCart()
	c.Discount = 200
	c.CouponCode = "WELCOME"
	flow := NewFlow(c)
	flow.SelectAddress(testAddress())
	_ = flow.Advance()
	flow.SetOptions(buildOptions([]RateQuote{
		{Type: "pickup", Price: 0},
		{Type: "standard", Price: 2500, Courier: "GIG", EstimatedDays: "3-5 days"},
	}), true)
	if err := flow.SelectOption("standard-GIG-1"); err != nil {
		t.Fatalf("SelectOption failed: %v", err)
	}
	_ = flow.Advance()
	_ = flow.SelectPayment(PaymentCashOnDelivery)
	flow.SetNotes("Leave at the gate")

	conf, err := svc.Submit(context.Background(), flow)
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	if conf.Order == nil || conf.Order.OrderNumber != "ORD-1001" {
		t.Fatalf("confirmation order = %+v", conf.Order)
	}
	if payload.SelectedDeliveryPrice != 2500 {
		t.Fatalf("selected_delivery_price = %d, want 2500", payload.SelectedDeliveryPrice)
	}
	if payload.SelectedCourier != "GIG" {
		t.Fatalf("selected_courier = %q, want GIG", payload.SelectedCourier)
	}
	if payload.DeliveryType != "standard" {
		t.Fatalf("delivery_type = %q, want standard", payload.DeliveryType)
	}
	if payload.PaymentMethod != "cash_on_delivery" {
		t.Fatalf("payment_method = %q, want cash_on_delivery", payload.PaymentMethod)
	}
	if payload.CouponCode != "WELCOME" {
		t.Fatalf("coupon_code = %q, want WELCOME", payload.CouponCode)
	}
	if payload.ShippingAddress.City != "Lagos" || payload.ShippingAddress.FullName != "John Doe" {
		t.Fatalf("shipping address snapshot = %+v", payload.ShippingAddress)
	}
	if payload.Notes != "Leave at the gate" {
		t.Fatalf("notes = %q", payload.Notes)
	}
	if idempotencyKey != flow.IdempotencyKey() {
		t.Fatalf("idempotency key = %q, want %q", idempotencyKey, flow.IdempotencyKey())
	}
}

func TestSubmitFailureLeavesFlowIntact(t *testing.T) {
	router := newRouter()
	router.POST("/api/v1/orders", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": "Out of stock"})
	})

	svc := NewService(newTestClient(t, router), testLogger())
	flow := NewFlow(testCart())
	flow.SelectAddress(testAddress())
	_ = flow.Advance()
	flow.SetOptions(FallbackOptions(), false)
	_ = flow.Advance()

	key := flow.IdempotencyKey()
	_, err := svc.Submit(context.Background(), flow)
	if err == nil {
		t.Fatal("Submit() succeeded, want server rejection")
	}
	if got := api.ServerMessage(err, "fallback"); got != "Out of stock" {
		t.Fatalf("server message = %q, want %q", got, "Out of stock")
	}

	// The user can retry without re-entering earlier steps
	if flow.Step() != StepPayment {
		t.Fatalf("step = %v after failed submit, want StepPayment", flow.Step())
	}
	if flow.Address() == nil || flow.SelectedOption() == nil {
		t.Fatal("selections were dropped on failed submit")
	}
	if flow.IdempotencyKey() != key {
		t.Fatal("idempotency key changed between attempts")
	}
}

func TestSubmitDefensiveRechecks(t *testing.T) {
	calls := 0
	router := newRouter()
	router.POST("/api/v1/orders", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{}})
	})

	svc := NewService(newTestClient(t, router), testLogger())

	flow := NewFlow(testCart())
	if _, err := svc.Submit(context.Background(), flow); err != ErrAddressRequired {
		t.Fatalf("Submit() without address error = %v, want ErrAddressRequired", err)
	}

	flow.SelectAddress(testAddress())
	if _, err := svc.Submit(context.Background(), flow); err != ErrDeliveryRequired {
		t.Fatalf("Submit() without option error = %v, want ErrDeliveryRequired", err)
	}

	if calls != 0 {
		t.Fatalf("order endpoint called %d times before guards passed, want 0", calls)
	}
}

// End-to-end pricing walk: cart 1000x2, coupon 200, standard delivery
// 2500, cash on delivery submission.
func TestCheckoutScenario(t *testing.T) {
	serverCart := gin.H{
		"items": []gin.H{
			{"id": 1, "product_id": 10, "name": "Sneakers", "quantity": 2, "price": 1000},
		},
		"subtotal": 2000,
		"discount": 0,
	}

	var orderPayload CreateOrderRequest

	router := newRouter()
	router.GET("/api/v1/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": serverCart})
	})
	router.POST("/api/v1/cart/coupon/apply", func(c *gin.Context) {
		serverCart["discount"] = 200
		serverCart["coupon_code"] = "SAVE200"
		c.JSON(http.StatusOK, gin.H{"success": true, "data": serverCart})
	})
	router.POST("/api/v1/delivery/rates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data": []gin.H{
				{"type": "standard", "price": 2500, "courier": "GIG", "estimated_days": "3-5 days"},
				{"type": "express", "price": 5000, "courier": "DHL", "estimated_days": "1-2 days"},
			},
		})
	})
	router.POST("/api/v1/orders", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		_ = json.Unmarshal(body, &orderPayload)
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"data":    gin.H{"order": gin.H{"order_number": "ORD-7", "total_amount": 4300}},
		})
	})

	client := newTestClient(t, router)
	cartSvc := cart.NewService(client, testLogger())
	checkoutSvc := NewService(client, testLogger())
	ctx := context.Background()

	snapshot, err := cartSvc.Get(ctx)
	if err != nil {
		t.Fatalf("cart fetch failed: %v", err)
	}
	if snapshot.DisplayTotal() != 2000 {
		t.Fatalf("display total = %d, want 2000", snapshot.DisplayTotal())
	}

	snapshot, err = cartSvc.ApplyCoupon(ctx, "SAVE200")
	if err != nil {
		t.Fatalf("coupon apply failed: %v", err)
	}
	if snapshot.DisplayTotal() != 1800 {
		t.Fatalf("display total after coupon = %d, want 1800", snapshot.DisplayTotal())
	}

	flow := NewFlow(snapshot)
	flow.SelectAddress(testAddress())
	if err := flow.Advance(); err != nil {
		t.Fatalf("advance to delivery failed: %v", err)
	}
	if err := checkoutSvc.LoadRates(ctx, flow); err != nil {
		t.Fatalf("rate load failed: %v", err)
	}
	if !flow.LiveRates() {
		t.Fatal("expected live rates")
	}
	if err := flow.SelectOption("standard-GIG-0"); err != nil {
		t.Fatalf("option select failed: %v", err)
	}
	if flow.Total() != 4300 {
		t.Fatalf("checkout total = %d, want 4300", flow.Total())
	}
	if err := flow.Advance(); err != nil {
		t.Fatalf("advance to payment failed: %v", err)
	}
	if err := flow.SelectPayment(PaymentCashOnDelivery); err != nil {
		t.Fatalf("payment select failed: %v", err)
	}

	conf, err := checkoutSvc.Submit(ctx, flow)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if conf.Order.OrderNumber != "ORD-7" {
		t.Fatalf("order number = %q", conf.Order.OrderNumber)
	}

	if orderPayload.SelectedDeliveryPrice != 2500 {
		t.Fatalf("selected_delivery_price = %d, want 2500", orderPayload.SelectedDeliveryPrice)
	}
	if orderPayload.SelectedCourier != "GIG" {
		t.Fatalf("selected_courier = %q, want GIG", orderPayload.SelectedCourier)
	}
	if orderPayload.DeliveryType != "standard" {
		t.Fatalf("delivery_type = %q, want standard", orderPayload.DeliveryType)
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
