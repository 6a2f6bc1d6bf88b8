package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/intent"
	"github.com/Robotics-Lab-UCSB/remote-lab-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// IntentHandler serves predict_intentions against the pretrained models.
type IntentHandler struct {
	Classifier *intent.Classifier
}

func NewIntentHandler(classifier *intent.Classifier) *IntentHandler {
	return &IntentHandler{Classifier: classifier}
}

type predictReq struct {
	Message string `json:"message"`
}

// PredictIntentions classifies a chat message into a general intent and an
// object intent, each with a confidence score.
func (h *IntentHandler) PredictIntentions(c *gin.Context) {
	var req predictReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid JSON")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		util.Error(c, http.StatusBadRequest, "No message provided")
		return
	}

	generalIntent, generalConfidence := h.Classifier.General.Predict(message)
	objectIntent, objectConfidence := h.Classifier.Object.Predict(message)

	// confidences go out as strings, matching what existing clients parse
	util.JSON(c, http.StatusOK, util.Response{
		"general_intention":  generalIntent,
		"general_confidence": strconv.FormatFloat(generalConfidence, 'f', -1, 64),
		"object_intention":   objectIntent,
		"object_confidence":  strconv.FormatFloat(objectConfidence, 'f', -1, 64),
	})
}
