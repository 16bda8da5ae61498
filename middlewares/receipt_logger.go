package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-foh/utils"
)

func ReceiptLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.InfoLogger.Printf("Generating receipt for order ID: %s", c.Param("order_id"))

		c.Next()

		if c.Writer.Status() < 400 {
			utils.InfoLogger.Printf("Receipt generated successfully for order ID: %s", c.Param("order_id"))
		} else {
			utils.ErrorLogger.Printf("Failed to generate receipt for order ID: %s", c.Param("order_id"))
		}
	}
}
