package handlers

import (
	"net/http"
	"strconv"
	"time"

	"parkslot/services/booking"
	"parkslot/services/pricing"
	"parkslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxQuoteOptions = 48

// ListAreas handles GET /api/areas. A failed lookup yields an empty list with a message.
func (h *BookingHandler) ListAreas(c *gin.Context) {
	areas, err := h.BookingSvc.ListAreas(c.Request.Context())
	if err != nil {
		getLogger(c).Error("ListAreas: failed to fetch areas", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"areas": []interface{}{}, "message": "Failed to load parking areas"})
		return
	}
	resp := gin.H{"areas": areas}
	if len(areas) == 0 {
		resp["emptyMessage"] = "No parking areas available"
	}
	c.JSON(http.StatusOK, resp)
}

// ListSlots handles GET /api/areas/:areaID/slots.
func (h *BookingHandler) ListSlots(c *gin.Context) {
	areaID := c.Param("areaID")
	slots, err := h.BookingSvc.ListAvailableSlots(c.Request.Context(), areaID)
	if err != nil {
		getLogger(c).Error("ListSlots: failed to fetch slots", zap.String("areaID", areaID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"slots": []interface{}{}, "message": "Failed to load parking slots"})
		return
	}
	resp := gin.H{"slots": slots}
	if len(slots) == 0 {
		resp["emptyMessage"] = "No available slots in this area"
	}
	c.JSON(http.StatusOK, resp)
}

// Quote handles GET /api/quote?entry=RFC3339&count=n.
func (h *BookingHandler) Quote(c *gin.Context) {
	entry, err := time.Parse(time.RFC3339, c.Query("entry"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "entry must be an RFC3339 timestamp", err.Error())
		return
	}
	count := pricing.DefaultExitOptionCount
	if raw := c.Query("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil || count < 1 || count > maxQuoteOptions {
			utils.JSONError(c, http.StatusBadRequest, "count must be between 1 and 48", raw)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":        entry,
		"entryDisplay": pricing.FormatInIST(entry),
		"options":      booking.ExitOptionsFrom(pricing.GenerateExitTimeOptions(entry, count)),
	})
}
