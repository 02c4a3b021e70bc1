package controllers

import (
	"TravelMate/models"
	"TravelMate/services"
	"TravelMate/utils"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is the de facto status for a caller that went away
const statusClientClosedRequest = 499

type VacationController struct {
	VacationService *services.VacationService
}

func NewVacationController(vacationService *services.VacationService) *VacationController {
	return &VacationController{
		VacationService: vacationService,
	}
}

// CreateVacation plans and saves a vacation from a prompt or a structured intent
func (s *VacationController) CreateVacation(c *gin.Context) {
	userId, exists := c.Get("userId")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UserId is required")
		return
	}

	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" && req.Intent == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "prompt or intent is required")
		return
	}

	itinerary, err := s.VacationService.CreateVacation(c.Request.Context(), userId.(string), req)
	if err != nil {
		c.Error(toHTTPError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vacation created with "+pluralPlaces(len(itinerary.Places)), itinerary)
}

func (s *VacationController) GetVacations(c *gin.Context) {
	userId, exists := c.Get("userId")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UserId is required")
		return
	}

	vacations, err := s.VacationService.ListVacations(c.Request.Context(), userId.(string))
	if err != nil {
		c.Error(toHTTPError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vacations fetched successfully", vacations)
}

func (s *VacationController) GetVacationByID(c *gin.Context) {
	userId, exists := c.Get("userId")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UserId is required")
		return
	}

	vacation, err := s.VacationService.GetVacation(c.Request.Context(), userId.(string), c.Param("id"))
	if err != nil {
		c.Error(toHTTPError(err))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vacation fetched successfully", vacation)
}

// toHTTPError maps pipeline failures onto the small fixed set of messages
// shown to users
func toHTTPError(err error) *utils.CustomError {
	var persistErr *services.PersistError
	switch {
	case errors.Is(err, services.ErrIntent):
		return utils.WrapCustomError(http.StatusBadRequest, "Could not understand request", err)
	case errors.Is(err, services.ErrDestinationNotFound):
		return utils.WrapCustomError(http.StatusNotFound, "Destination not found", err)
	case errors.Is(err, services.ErrDestinationDetailsUnavailable):
		return utils.WrapCustomError(http.StatusBadGateway, "Destination details unavailable", err)
	case errors.Is(err, services.ErrVacationNotFound):
		return utils.WrapCustomError(http.StatusNotFound, "Vacation not found", err)
	case errors.As(err, &persistErr):
		return utils.WrapCustomError(http.StatusInternalServerError, "Failed to save itinerary", err)
	case errors.Is(err, context.Canceled):
		return utils.WrapCustomError(statusClientClosedRequest, "Request cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return utils.WrapCustomError(http.StatusServiceUnavailable, "Request timed out", err)
	}
	return utils.WrapCustomError(http.StatusInternalServerError, "Internal Server Error", err)
}

func pluralPlaces(n int) string {
	if n == 1 {
		return "1 place"
	}
	return strconv.Itoa(n) + " places"
}
