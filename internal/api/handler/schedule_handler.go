package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/applitrack/applitrack/internal/api/metrics"
	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

// ScheduleHandler handles HTTP requests for schedule events. Access control
// always runs through the parent company's owner.
type ScheduleHandler struct {
	companies ports.CompanyService
}

func NewScheduleHandler(companies ports.CompanyService) *ScheduleHandler {
	return &ScheduleHandler{companies: companies}
}

// Add handles POST /v1/companies/:id/schedules.
//
// @Summary      Add a schedule event to a company
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Company id"
// @Param        body  body      scheduleRequest  true  "Event details"
// @Success      201   {object}  scheduleResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/companies/{id}/schedules [post]
func (h *ScheduleHandler) Add(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	companyID, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}

	req, eventDate, err := bindScheduleRequest(c)
	if err != nil {
		return err
	}

	schedule, err := h.companies.AddSchedule(c.Request().Context(), userID, companyID, ports.AddScheduleInput{
		EventName:    req.EventName,
		EventContent: req.EventContent,
		EventDate:    eventDate,
		EventMemo:    req.EventMemo,
	})
	if err != nil {
		return err
	}

	metrics.SchedulesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toScheduleResponse(schedule))
}

// Get handles GET /v1/schedules/:id, used to prefill the edit form.
//
// @Summary      Get one schedule event
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Schedule id"
// @Success      200  {object}  scheduleResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/schedules/{id} [get]
func (h *ScheduleHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	scheduleID, err := pathID(c, "id", domain.ErrScheduleNotFound)
	if err != nil {
		return err
	}

	schedule, err := h.companies.GetSchedule(c.Request().Context(), userID, scheduleID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toScheduleResponse(schedule))
}

// Update handles PUT /v1/schedules/:id.
//
// @Summary      Update a schedule event
// @Tags         schedules
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int              true  "Schedule id"
// @Param        body  body      scheduleRequest  true  "Event details"
// @Success      204   "updated"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/schedules/{id} [put]
func (h *ScheduleHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	scheduleID, err := pathID(c, "id", domain.ErrScheduleNotFound)
	if err != nil {
		return err
	}

	req, eventDate, err := bindScheduleRequest(c)
	if err != nil {
		return err
	}

	err = h.companies.UpdateSchedule(c.Request().Context(), userID, scheduleID, ports.UpdateScheduleInput{
		EventName:    req.EventName,
		EventContent: req.EventContent,
		EventDate:    eventDate,
		EventMemo:    req.EventMemo,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/schedules/:id.
//
// @Summary      Delete a schedule event
// @Tags         schedules
// @Security     BearerAuth
// @Param        id   path  int  true  "Schedule id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /v1/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	scheduleID, err := pathID(c, "id", domain.ErrScheduleNotFound)
	if err != nil {
		return err
	}

	if err := h.companies.DeleteSchedule(c.Request().Context(), userID, scheduleID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func bindScheduleRequest(c echo.Context) (scheduleRequest, time.Time, error) {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return req, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	eventDate, err := time.Parse(dateLayout, req.EventDate)
	if err != nil {
		return req, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "event_date must be a date in the form 2006-01-02")
	}
	return req, eventDate, nil
}
