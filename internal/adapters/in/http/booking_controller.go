package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/config"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/domain"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/in"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/services/booking_wizard"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BookingController struct {
	useCase  in.BookingUseCase
	admin    in.BookingAdminUseCase
	cfg      *config.Config
	gatherer prometheus.Gatherer
	logger   out.LoggerPort
}

func NewBookingController(
	useCase in.BookingUseCase,
	admin in.BookingAdminUseCase,
	cfg *config.Config,
	gatherer prometheus.Gatherer,
	logger out.LoggerPort,
) *BookingController {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &BookingController{
		useCase:  useCase,
		admin:    admin,
		cfg:      cfg,
		gatherer: gatherer,
		logger:   logger,
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/services", c.listServices)
		api.GET("/slots", c.listSlots)
		api.GET("/availability/:date", c.dayAvailability)
		api.POST("/bookings", c.createBooking)
	}

	admin := api.Group("/admin")
	admin.Use(c.basicAuth())
	{
		admin.GET("/bookings", c.listBookings)
		admin.POST("/bookings/prune", c.pruneBookings)
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))
}

type CreateBookingRequest struct {
	Service string         `json:"service"`
	Date    string         `json:"date"`
	Time    string         `json:"time"`
	Contact domain.Contact `json:"contact"`
}

func (c *BookingController) listServices(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"services": c.useCase.Services()})
}

func (c *BookingController) listSlots(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"slots": c.useCase.AllSlots()})
}

func (c *BookingController) dayAvailability(ctx *gin.Context) {
	date, err := domain.ParseDate(ctx.Param("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	slots, err := c.useCase.DayAvailability(ctx.Request.Context(), date)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

// createBooking walks a fresh wizard through every step with the request values,
// so the HTTP path enforces the same guards as the dialog.
func (c *BookingController) createBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reqCtx := ctx.Request.Context()
	wizard := booking_wizard.Open(reqCtx, c.useCase, c.logger)
	defer wizard.Close()

	if req.Service != "" {
		if err := wizard.SelectService(req.Service); err != nil {
			c.wizardError(ctx, wizard, err)
			return
		}
	}
	if err := wizard.Next(reqCtx); err != nil {
		c.wizardError(ctx, wizard, err)
		return
	}

	if req.Date != "" {
		date, err := domain.ParseDate(req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format, expected YYYY-MM-DD",
				"step":  wizard.Step().String(),
			})
			return
		}
		if err := wizard.SelectDate(date); err != nil {
			c.wizardError(ctx, wizard, err)
			return
		}
	}
	if err := wizard.SelectSlot(domain.TimeSlot(req.Time)); err != nil {
		c.wizardError(ctx, wizard, err)
		return
	}
	if err := wizard.Next(reqCtx); err != nil {
		c.wizardError(ctx, wizard, err)
		return
	}

	if err := wizard.SetContact(req.Contact); err != nil {
		c.wizardError(ctx, wizard, err)
		return
	}
	booking, err := wizard.Submit(reqCtx)
	if err != nil {
		c.wizardError(ctx, wizard, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func (c *BookingController) wizardError(ctx *gin.Context, wizard *booking_wizard.Wizard, err error) {
	body := gin.H{
		"error": err.Error(),
		"step":  wizard.Step().String(),
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		body["fields"] = validationErr.Fields
		ctx.JSON(http.StatusUnprocessableEntity, body)
	case errors.Is(err, domain.ErrAlreadyBooked), errors.Is(err, domain.ErrSlotUnavailable):
		ctx.JSON(http.StatusConflict, body)
	case errors.Is(err, domain.ErrStepIncomplete),
		errors.Is(err, domain.ErrUnknownService),
		errors.Is(err, domain.ErrUnknownSlot):
		ctx.JSON(http.StatusBadRequest, body)
	default:
		c.logger.Error("http.booking.failed", out.LogFields{
			"error": err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *BookingController) listBookings(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"bookings": c.admin.Bookings(ctx.Request.Context())})
}

func (c *BookingController) pruneBookings(ctx *gin.Context) {
	removed, err := c.admin.Prune(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (c *BookingController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !c.validClient(username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}

func (c *BookingController) validClient(username, password string) bool {
	for _, client := range c.cfg.Auth.BasicClients {
		if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
			subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
			return true
		}
	}
	return false
}
