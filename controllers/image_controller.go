package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PleasantH/NutriPal-Chatbot/services"
	"github.com/PleasantH/NutriPal-Chatbot/utils"
)

type ImageController struct {
	LLM services.Inference
}

func NewImageController(llm services.Inference) *ImageController {
	return &ImageController{LLM: llm}
}

// Analyze takes a data-URL image, asks the model whether it shows food
// or something health-related, and returns the analysis. When S3 is
// configured the original image is archived and its URL returned too.
func (ic *ImageController) Analyze(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	contentType, data, err := utils.DecodeDataURL(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := ic.LLM.AnalyzeImage(c.Request.Context(), contentType, data, nil)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"analysis": analysis}
	if utils.S3Enabled() {
		url, err := utils.UploadMealImage(contentType, data)
		if err != nil {
			log.Printf("meal image archive failed: %v", err) // analysis still succeeds
		} else {
			resp["image_url"] = url
		}
	}
	c.JSON(http.StatusOK, resp)
}
