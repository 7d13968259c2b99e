package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/applitrack/applitrack/internal/api/metrics"
	"github.com/applitrack/applitrack/internal/core/domain"
	"github.com/applitrack/applitrack/internal/core/ports"
)

// CompanyHandler handles HTTP requests for company operations.
type CompanyHandler struct {
	companies ports.CompanyService
	views     ports.ViewService
}

func NewCompanyHandler(companies ports.CompanyService, views ports.ViewService) *CompanyHandler {
	return &CompanyHandler{companies: companies, views: views}
}

// List handles GET /v1/companies.
//
// @Summary      List companies with optional sort and industry filter
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        sort      query     string  false  "interest_desc or deadline_asc"
// @Param        industry  query     string  false  "Exact industry match"
// @Success      200       {object}  listCompaniesResponse
// @Failure      400       {object}  map[string]string
// @Router       /v1/companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	input := ports.ListCompaniesInput{
		Sort:     c.QueryParam("sort"),
		Industry: c.QueryParam("industry"),
	}

	companies, err := h.views.ListCompanies(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}

	data := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		data = append(data, toCompanyResponse(company))
	}

	return c.JSON(http.StatusOK, listCompaniesResponse{
		Data:     data,
		Sort:     input.Sort,
		Industry: input.Industry,
	})
}

// Industries handles GET /v1/companies/industries — the filter facet.
//
// @Summary      List distinct industries of the user's companies
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  industriesResponse
// @Router       /v1/companies/industries [get]
func (h *CompanyHandler) Industries(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	industries, err := h.views.ListIndustries(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, industriesResponse{Industries: industries})
}

// Detail handles GET /v1/companies/:id — company, selection and schedules.
//
// @Summary      Company detail view
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Company id"
// @Success      200  {object}  companyDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/companies/{id} [get]
func (h *CompanyHandler) Detail(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}

	detail, err := h.views.CompanyDetail(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}

	schedules := make([]scheduleResponse, 0, len(detail.Schedules))
	for _, s := range detail.Schedules {
		schedules = append(schedules, toScheduleResponse(s))
	}

	return c.JSON(http.StatusOK, companyDetailResponse{
		Company:   toCompanyResponse(detail.Company),
		Selection: toSelectionResponse(detail.Selection),
		Schedules: schedules,
	})
}

// Create handles POST /v1/companies.
//
// @Summary      Register a new company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCompanyRequest  true  "Company details"
// @Success      201   {object}  companyResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.companies.CreateCompany(c.Request().Context(), userID, ports.CreateCompanyInput{
		Name:     req.Name,
		Industry: req.Industry,
		URL:      req.URL,
	})
	if err != nil {
		return err
	}

	metrics.CompaniesCreatedTotal.Inc()
	resp := toCompanyResponse(company)
	c.Response().Header().Set(echo.HeaderLocation, resp.Links.Self)
	return c.JSON(http.StatusCreated, resp)
}

// UpdateBasic handles PUT /v1/companies/:id.
//
// @Summary      Update the name, industry and URL of a company
// @Tags         companies
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int                        true  "Company id"
// @Param        body  body      updateCompanyBasicRequest  true  "Basic fields"
// @Success      204   "updated"
// @Failure      404   {object}  map[string]string
// @Router       /v1/companies/{id} [put]
func (h *CompanyHandler) UpdateBasic(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}

	var req updateCompanyBasicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.companies.UpdateCompanyBasic(c.Request().Context(), userID, id, ports.UpdateCompanyBasicInput{
		Name:     req.Name,
		Industry: req.Industry,
		URL:      req.URL,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// UpsertSelection handles PUT /v1/companies/:id/selection; the selection row
// is created on first edit.
//
// @Summary      Set the hiring-process status of a company
// @Tags         companies
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Company id"
// @Param        body  body      upsertSelectionRequest  true  "Selection fields"
// @Success      204   "saved"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/companies/{id}/selection [put]
func (h *CompanyHandler) UpsertSelection(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}

	var req upsertSelectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.companies.UpsertSelection(c.Request().Context(), userID, id, ports.UpsertSelectionInput{
		EntryDate: parseOptionalDate(req.EntryDate),
		Status:    req.Status,
		Phase:     req.Phase,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateDetail handles PUT /v1/companies/:id/detail.
//
// @Summary      Update interest, memo and next deadline of a company
// @Tags         companies
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Company id"
// @Param        body  body      updateCompanyDetailRequest  true  "Detail fields"
// @Success      204   "updated"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/companies/{id}/detail [put]
func (h *CompanyHandler) UpdateDetail(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domain.ErrCompanyNotFound)
	if err != nil {
		return err
	}

	var req updateCompanyDetailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.companies.UpdateCompanyDetail(c.Request().Context(), userID, id, ports.UpdateCompanyDetailInput{
		Interest:     req.Interest,
		Memo:         req.Memo,
		NextDeadline: parseOptionalDate(req.NextDeadline),
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteMany handles DELETE /v1/companies. Ids the user does not own are
// skipped silently; the response reports how many companies were deleted.
//
// @Summary      Delete companies and their selections and schedules
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteCompaniesRequest  true  "Company ids"
// @Success      200   {object}  deleteCompaniesResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/companies [delete]
func (h *CompanyHandler) DeleteMany(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req deleteCompaniesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deleted, err := h.companies.DeleteCompanies(c.Request().Context(), userID, req.IDs)
	if err != nil {
		return err
	}

	metrics.CompaniesDeletedTotal.Add(float64(deleted))
	return c.JSON(http.StatusOK, deleteCompaniesResponse{Deleted: deleted})
}

// pathID parses a numeric path parameter; a malformed id maps to the same
// not-found response as an unknown one.
func pathID(c echo.Context, name string, missing error) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, missing
	}
	return id, nil
}
