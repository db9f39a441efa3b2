package bot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"motoride/config"
	"motoride/pkg/models"
	"motoride/service"

	"github.com/gin-gonic/gin"
)

// RunServer exposes the small HTTP surface next to the bot: the email
// verification confirm link, booking reads and writes, and the operator
// endpoints for reviewing and approving driver applications.
func RunServer(cfg config.Config, svc service.IServiceManager) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := r.Group("/api")
	{
		api.GET("/verify", func(c *gin.Context) {
			token := c.Query("token")
			if token == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
				return
			}
			accountID, err := svc.Account().ConfirmVerification(context.Background(), token)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"account_id": accountID, "verified": true})
		})

		api.GET("/drivers/pending", func(c *gin.Context) {
			drivers, err := svc.Driver().Pending(context.Background())
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, drivers)
		})

		api.GET("/drivers/:id", func(c *gin.Context) {
			accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
				return
			}
			driver, err := svc.Driver().Get(context.Background(), accountID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if driver == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
				return
			}
			c.JSON(http.StatusOK, driver)
		})

		api.POST("/drivers/:id/approve", func(c *gin.Context) {
			accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
				return
			}
			if err := svc.Driver().Approve(context.Background(), accountID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"account_id": accountID, "approved": true})
		})

		api.GET("/drivers/:id/bookings", func(c *gin.Context) {
			accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
				return
			}
			bookings, err := svc.Booking().History(context.Background(), accountID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, bookings)
		})

		api.GET("/bookings/:id", func(c *gin.Context) {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
				return
			}
			booking, err := svc.Booking().Get(context.Background(), id)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if booking == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			c.JSON(http.StatusOK, booking)
		})

		api.POST("/bookings", func(c *gin.Context) {
			var booking models.Booking
			if err := c.ShouldBindJSON(&booking); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			created, err := svc.Booking().Book(context.Background(), &booking)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusCreated, created)
		})
	}

	return r.Run(fmt.Sprintf(":%d", cfg.AppPort))
}
