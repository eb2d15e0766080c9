package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workledger/timesheet-service/internal/api/metrics"
	"github.com/workledger/timesheet-service/internal/core/ports"
)

// WorkEntryHandler handles HTTP requests for work entry operations.
type WorkEntryHandler struct {
	service ports.WorkEntryService
}

func NewWorkEntryHandler(service ports.WorkEntryService) *WorkEntryHandler {
	return &WorkEntryHandler{service: service}
}

// Create handles POST /api/v1/work-entries.
//
// @Summary      Create a work entry
// @Tags         work-entries
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                  false  "Replay-safe creation key"
// @Param        body             body      createWorkEntryRequest  true   "Work entry details"
// @Success      201              {object}  apiResponse{data=workEntryResponse}
// @Failure      400              {object}  apiResponse
// @Router       /api/v1/work-entries [post]
func (h *WorkEntryHandler) Create(c echo.Context) error {
	var req createWorkEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput(c.Request().Header.Get("Idempotency-Key"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid work_date, expected YYYY-MM-DD")
	}

	result, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		return c.JSON(http.StatusOK, envelope(toWorkEntryResponse(&result.Entry), "work entry already created"))
	}

	metrics.EntriesCreatedTotal.WithLabelValues(result.Entry.ProgramType).Inc()
	return c.JSON(http.StatusCreated, envelope(toWorkEntryResponse(&result.Entry), "work entry created successfully"))
}

// Update handles PUT /api/v1/work-entries/:id.
//
// @Summary      Update a work entry
// @Tags         work-entries
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Work entry id"
// @Param        body  body      updateWorkEntryRequest  true  "Fields to patch"
// @Success      200   {object}  apiResponse{data=workEntryResponse}
// @Failure      400   {object}  apiResponse
// @Failure      404   {object}  apiResponse
// @Failure      409   {object}  apiResponse
// @Router       /api/v1/work-entries/{id} [put]
func (h *WorkEntryHandler) Update(c echo.Context) error {
	var req updateWorkEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid work_date, expected YYYY-MM-DD")
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toWorkEntryResponse(detail), "work entry updated successfully"))
}

// Get handles GET /api/v1/work-entries/:id.
//
// @Summary      Get a work entry by id
// @Tags         work-entries
// @Produce      json
// @Param        id  path      string  true  "Work entry id"
// @Success      200  {object}  apiResponse{data=workEntryResponse}
// @Failure      404  {object}  apiResponse
// @Router       /api/v1/work-entries/{id} [get]
func (h *WorkEntryHandler) Get(c echo.Context) error {
	detail, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toWorkEntryResponse(detail), "work entry retrieved"))
}

// List handles GET /api/v1/work-entries.
//
// @Summary      List work entries
// @Tags         work-entries
// @Produce      json
// @Param        page       query     int     false  "Page number (0-based)"
// @Param        size       query     int     false  "Page size (max 100)"
// @Param        sortBy     query     string  false  "Sort field: workDate, createdAt, hoursSpent, status"
// @Param        direction  query     string  false  "Sort direction: ASC or DESC"
// @Success      200        {object}  apiResponse{data=pageResponse}
// @Failure      400        {object}  apiResponse
// @Router       /api/v1/work-entries [get]
func (h *WorkEntryHandler) List(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListAll(c.Request().Context(), ports.ListWorkEntriesInput{
		Page:      page,
		Size:      size,
		SortBy:    c.QueryParam("sortBy"),
		Direction: c.QueryParam("direction"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toPageResponse(result), "work entries retrieved"))
}

// ListByDateRange handles GET /api/v1/work-entries/date-range.
//
// @Summary      List work entries within a date range
// @Tags         work-entries
// @Produce      json
// @Param        startDate  query     string  true   "Start date (YYYY-MM-DD), inclusive"
// @Param        endDate    query     string  true   "End date (YYYY-MM-DD), inclusive"
// @Param        page       query     int     false  "Page number (0-based)"
// @Param        size       query     int     false  "Page size (max 100)"
// @Success      200        {object}  apiResponse{data=pageResponse}
// @Failure      400        {object}  apiResponse
// @Router       /api/v1/work-entries/date-range [get]
func (h *WorkEntryHandler) ListByDateRange(c echo.Context) error {
	start, err := dateParam(c, "startDate")
	if err != nil {
		return err
	}
	end, err := dateParam(c, "endDate")
	if err != nil {
		return err
	}
	page, size, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListByDateRange(c.Request().Context(), start, end, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toPageResponse(result), "work entries retrieved"))
}

// ListByDate handles GET /api/v1/work-entries/date/:date.
//
// @Summary      List work entries for an exact date
// @Tags         work-entries
// @Produce      json
// @Param        date  path      string  true  "Work date (YYYY-MM-DD)"
// @Success      200   {object}  apiResponse{data=[]workEntrySummaryResponse}
// @Failure      400   {object}  apiResponse
// @Router       /api/v1/work-entries/date/{date} [get]
func (h *WorkEntryHandler) ListByDate(c echo.Context) error {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}

	summaries, err := h.service.ListByDate(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toSummaryResponses(summaries), "work entries retrieved"))
}

// ListByStatus handles GET /api/v1/work-entries/status/:status.
//
// @Summary      List work entries by status
// @Tags         work-entries
// @Produce      json
// @Param        status  path      string  true   "Status: DRAFT, SUBMITTED or LOCKED"
// @Param        page    query     int     false  "Page number (0-based)"
// @Param        size    query     int     false  "Page size (max 100)"
// @Success      200     {object}  apiResponse{data=pageResponse}
// @Failure      400     {object}  apiResponse
// @Router       /api/v1/work-entries/status/{status} [get]
func (h *WorkEntryHandler) ListByStatus(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListByStatus(c.Request().Context(), c.Param("status"), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(toPageResponse(result), "work entries retrieved"))
}

// Submit handles PATCH /api/v1/work-entries/:id/submit.
//
// @Summary      Submit a draft work entry
// @Tags         work-entries
// @Produce      json
// @Param        id  path      string  true  "Work entry id"
// @Success      200  {object}  apiResponse{data=workEntryResponse}
// @Failure      404  {object}  apiResponse
// @Failure      409  {object}  apiResponse
// @Router       /api/v1/work-entries/{id}/submit [patch]
func (h *WorkEntryHandler) Submit(c echo.Context) error {
	detail, err := h.service.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.EntriesSubmittedTotal.Inc()
	return c.JSON(http.StatusOK, envelope(toWorkEntryResponse(detail), "work entry submitted successfully"))
}

// Lock handles PATCH /api/v1/work-entries/:id/lock.
//
// @Summary      Lock a submitted work entry
// @Tags         work-entries
// @Produce      json
// @Param        id  path      string  true  "Work entry id"
// @Success      200  {object}  apiResponse{data=workEntryResponse}
// @Failure      404  {object}  apiResponse
// @Failure      409  {object}  apiResponse
// @Router       /api/v1/work-entries/{id}/lock [patch]
func (h *WorkEntryHandler) Lock(c echo.Context) error {
	detail, err := h.service.Lock(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.EntriesLockedTotal.Inc()
	return c.JSON(http.StatusOK, envelope(toWorkEntryResponse(detail), "work entry locked successfully"))
}

// Delete handles DELETE /api/v1/work-entries/:id.
//
// @Summary      Delete a work entry
// @Tags         work-entries
// @Produce      json
// @Param        id  path      string  true  "Work entry id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiResponse
// @Failure      409  {object}  apiResponse
// @Router       /api/v1/work-entries/{id} [delete]
func (h *WorkEntryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.EntriesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, envelope(nil, "work entry deleted successfully"))
}

// TotalHours handles GET /api/v1/work-entries/hours/total.
//
// @Summary      Total hours within a date range
// @Tags         work-entries
// @Produce      json
// @Param        startDate  query     string  true  "Start date (YYYY-MM-DD), inclusive"
// @Param        endDate    query     string  true  "End date (YYYY-MM-DD), inclusive"
// @Success      200        {object}  apiResponse{data=totalHoursResponse}
// @Failure      400        {object}  apiResponse
// @Router       /api/v1/work-entries/hours/total [get]
func (h *WorkEntryHandler) TotalHours(c echo.Context) error {
	start, err := dateParam(c, "startDate")
	if err != nil {
		return err
	}
	end, err := dateParam(c, "endDate")
	if err != nil {
		return err
	}

	total, err := h.service.SumHours(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(totalHoursResponse{
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		TotalHours: total,
	}, "total hours calculated"))
}

// CanModify handles GET /api/v1/work-entries/:id/can-modify.
//
// @Summary      Check whether a work entry can still be modified
// @Tags         work-entries
// @Produce      json
// @Param        id  path      string  true  "Work entry id"
// @Success      200  {object}  apiResponse{data=canModifyResponse}
// @Failure      404  {object}  apiResponse
// @Router       /api/v1/work-entries/{id}/can-modify [get]
func (h *WorkEntryHandler) CanModify(c echo.Context) error {
	id := c.Param("id")
	canModify, err := h.service.CanModify(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope(canModifyResponse{ID: id, CanModify: canModify}, "modifiability evaluated"))
}

// --- query param helpers ---

func pageParams(c echo.Context) (page, size int, err error) {
	page, err = intParam(c, "page", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err = intParam(c, "size", 20)
	if err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}

func dateParam(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}
