package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	ws "beauty-salon-server/websocket"
)

// eventHub receives salon events for the admin console; nil until main (or a
// test) wires it, and handlers treat it as optional.
var eventHub *ws.Hub

// InitEventHub connects the handlers to the WebSocket event hub
func InitEventHub(hub *ws.Hub) {
	eventHub = hub
}

func publishEvent(eventType string, data interface{}) {
	if eventHub != nil {
		eventHub.Publish(eventType, data)
	}
}

// RegisterRoutes registers every resource under the API group
func RegisterRoutes(api *gin.RouterGroup) {
	RegisterCustomerRoutes(api.Group("/customers"))
	RegisterServiceCategoryRoutes(api.Group("/servicecategories"))
	RegisterServiceRoutes(api.Group("/services"))
	RegisterAppointmentRoutes(api.Group("/appointments"))
	RegisterPaymentRoutes(api.Group("/payments"))
}

// parseID reads a numeric path parameter, replying 400 itself on garbage
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// parseTimeParam accepts RFC 3339 timestamps or plain dates, which is what
// the console sends for calendar ranges.
func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
