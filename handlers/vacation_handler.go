package handlers

import (
	"TravelMate/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterVacationRoutes mounts the vacation routes. auth guards every route,
// planLimit only guards planning since that is the call that spends provider quota.
func RegisterVacationRoutes(router *gin.RouterGroup, vacationController *controllers.VacationController, auth gin.HandlerFunc, planLimit gin.HandlerFunc) {
	vacationGroup := router.Group("/vacations", auth)
	{
		vacationGroup.POST("", planLimit, vacationController.CreateVacation)

		vacationGroup.GET("", vacationController.GetVacations)

		vacationGroup.GET("/:id", vacationController.GetVacationByID)
	}
}
