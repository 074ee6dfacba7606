package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PleasantH/NutriPal-Chatbot/models"
	"github.com/PleasantH/NutriPal-Chatbot/services"
)

type DiaryController struct {
	Store  *services.DiaryStore
	Mailer services.Dispatcher // nil when email is not configured
}

func NewDiaryController(store *services.DiaryStore, mailer services.Dispatcher) *DiaryController {
	return &DiaryController{Store: store, Mailer: mailer}
}

func (dc *DiaryController) LogEntry(c *gin.Context) {
	var body struct {
		OwnerID     string `json:"owner_id" binding:"required"`
		MealType    string `json:"meal_type" binding:"required"`
		Description string `json:"description"`
		Water       int    `json:"water"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := dc.Store.Append(body.OwnerID, services.EntryInput{
		MealType:    body.MealType,
		Description: body.Description,
		Water:       body.Water,
	})
	if err != nil {
		var invalid *models.InvalidEntryError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (dc *DiaryController) History(c *gin.Context) {
	entries, err := dc.Store.LoadAll(c.Param("ownerID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Summary renders the owner's whole diary bucketed by day or month.
// The on-demand view carries no advisories; those belong to the daily
// email.
func (dc *DiaryController) Summary(c *gin.Context) {
	g, ok := services.ParseGranularity(c.DefaultQuery("granularity", "day"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "granularity must be day or month"})
		return
	}

	entries, err := dc.Store.LoadAll(c.Param("ownerID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	buckets, err := services.Summarize(entries, g)
	if err != nil {
		var invalid *models.InvalidEntryError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"buckets": buckets,
		"summary": services.RenderSummary(buckets),
	})
}

// SendSummary mails the owner today's summary on demand. Dispatch
// failure comes back as an informational message, not an error status.
func (dc *DiaryController) SendSummary(c *gin.Context) {
	var body struct {
		OwnerID string `json:"owner_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if dc.Mailer == nil {
		c.JSON(http.StatusOK, gin.H{"sent": false, "message": "email is not configured"})
		return
	}

	entries, err := dc.Store.LoadAll(body.OwnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	today := time.Now().Format(models.DateLayout)
	text, hasEntries, err := services.TodaySummary(entries, today)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if !hasEntries {
		c.JSON(http.StatusOK, gin.H{"sent": false, "message": "no entries logged today"})
		return
	}

	subject := "Your NutriPal diary summary for " + today
	if err := dc.Mailer.Send(body.OwnerID, subject, text); err != nil {
		c.JSON(http.StatusOK, gin.H{"sent": false, "message": "summary could not be sent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}
