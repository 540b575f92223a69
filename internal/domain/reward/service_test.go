package reward

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/session"
)

func newTestService(t *testing.T, router http.Handler) *Service {
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

	return NewService(api.New(cfg, sessions, logger), logger)
}

func TestRedeemRejectsNonPositivePoints(t *testing.T) {
	calls := 0
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/rewards/redeem", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
	})

	svc := newTestService(t, router)
	ctx := context.Background()

	for _, points := range []int64{0, -100} {
		if _, err := svc.Redeem(ctx, points); err == nil {
			t.Errorf("Redeem(%d) succeeded, want rejection", points)
		}
	}
	if calls != 0 {
		t.Fatalf("server called %d times for invalid points, want 0", calls)
	}
}

func TestRedeemReturnsServerValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/rewards/redeem", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"points":      500,
			"value":       250,
			"coupon_code": "RWD-500",
			"balance":     1500,
		}})
	})

	svc := newTestService(t, router)
	redemption, err := svc.Redeem(context.Background(), 500)
	if err != nil {
		t.Fatalf("Redeem() failed: %v", err)
	}
	if redemption.Value != 250 || redemption.CouponCode != "RWD-500" || redemption.Balance != 1500 {
		t.Fatalf("redemption = %+v", redemption)
	}
}

func TestSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/rewards", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"balance":         2000,
			"lifetime_points": 5400,
			"pending_points":  150,
		}})
	})

	svc := newTestService(t, router)
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if summary.Balance != 2000 || summary.PendingPoints != 150 {
		t.Fatalf("summary = %+v", summary)
	}
}
