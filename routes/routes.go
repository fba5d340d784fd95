package routes

import (
	"net/http"
	"time"

	"parkslot/handlers"
	"parkslot/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterParkingRoutes registers the area, slot and quote endpoints.
func RegisterParkingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/areas", hb.ListAreas)
	api.GET("/areas/:areaID/slots", hb.ListSlots)
	api.GET("/quote", hb.Quote)
}

// RegisterHistoryRoutes registers the active/past bookings endpoints.
func RegisterHistoryRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.GET("/active", hb.ListActiveBookings)
		bookings.GET("/past", hb.ListPastBookings)
		bookings.POST("/:bookingID/cancel", hb.CancelBooking)
	}
}

// RegisterHealthRoute reports the last background dependency check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "dependencies": status})
	})
}

func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)

	api := r.Group("/api")
	api.Use(hb.AuthMiddleware)
	RegisterParkingRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterHistoryRoutes(api, hb)
}
