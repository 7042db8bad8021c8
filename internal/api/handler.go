package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fixdict/internal/dict"
	"github.com/guttosm/fixdict/internal/domain/dto"
	"github.com/guttosm/fixdict/internal/middleware"
	"github.com/guttosm/fixdict/internal/service"
	"github.com/guttosm/fixdict/internal/storage"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// Handler provides HTTP handlers for dictionary lookups.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Resolve lookups through the dictionary service
//   - Translate dictionary entities into response DTOs
//
// Lookup failures are attached with c.Error and rendered by
// middleware.ErrorHandler.
type Handler struct {
	svc     service.DictionaryService
	catalog storage.DictionaryRepository
}

// NewHandler constructs a Handler. catalog may be nil when storage is
// disabled; the ingestion catalog endpoint then answers 503.
func NewHandler(svc service.DictionaryService, catalog storage.DictionaryRepository) *Handler {
	return &Handler{svc: svc, catalog: catalog}
}

// ListVersions godoc
// @Summary      List loaded versions
// @Description  Returns every protocol version currently loaded, sorted
// @Tags         dictionaries
// @Produce      json
// @Success      200  {object}  dto.VersionsResponse
// @Router       /api/v1/versions [get]
func (h *Handler) ListVersions(c *gin.Context) {
	versions := h.svc.Versions(c.Request.Context())
	if versions == nil {
		versions = []string{}
	}
	c.JSON(http.StatusOK, dto.VersionsResponse{Versions: versions})
}

// ListFields godoc
// @Summary      List fields
// @Description  Returns one page of fields in definition order
// @Tags         fields
// @Produce      json
// @Param        version  path      string  true   "Protocol version" example(FIX.4.4)
// @Param        offset   query     int     false  "Items to skip" default(0)
// @Param        limit    query     int     false  "Page size (max 500)" default(50)
// @Success      200      {object}  dto.FieldPageResponse
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse  "Version not loaded"
// @Router       /api/v1/dictionaries/{version}/fields [get]
func (h *Handler) ListFields(c *gin.Context) {
	offset, err := intQuery(c, "offset", 0)
	if err != nil || offset < 0 {
		middleware.AbortWithError(c, http.StatusBadRequest, "offset must be a non-negative integer", err)
		return
	}
	limit, err := intQuery(c, "limit", defaultPageSize)
	if err != nil || limit < 1 || limit > maxPageSize {
		middleware.AbortWithError(c, http.StatusBadRequest, "limit must be between 1 and 500", err)
		return
	}

	version := c.Param("version")
	d, err := h.svc.Dictionary(c.Request.Context(), version)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, total, err := h.svc.Fields(c.Request.Context(), version, offset, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := dto.FieldPageResponse{
		Version: version,
		Offset:  offset,
		Limit:   limit,
		Total:   total,
		Fields:  make([]dto.FieldResponse, 0, len(page)),
	}
	for _, f := range page {
		resp.Fields = append(resp.Fields, dto.NewFieldResponse(d, f))
	}
	c.JSON(http.StatusOK, resp)
}

// GetField godoc
// @Summary      Get field
// @Description  Looks a field up by tag number or by name
// @Tags         fields
// @Produce      json
// @Param        version  path      string  true  "Protocol version" example(FIX.4.4)
// @Param        key      path      string  true  "Tag number or field name" example(35)
// @Success      200      {object}  dto.FieldResponse
// @Failure      404      {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/dictionaries/{version}/fields/{key} [get]
func (h *Handler) GetField(c *gin.Context) {
	ctx := c.Request.Context()
	version := c.Param("version")
	f, err := h.svc.Field(ctx, version, c.Param("key"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	d, err := h.svc.Dictionary(ctx, version)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFieldResponse(d, f))
}

// GetMessage godoc
// @Summary      Get message
// @Description  Looks a message up by msg type or by name and returns its layout tree. format=text renders the layout as an indented outline.
// @Tags         messages
// @Produce      json
// @Produce      plain
// @Param        version  path      string  true   "Protocol version" example(FIX.4.4)
// @Param        key      path      string  true   "MsgType or message name" example(D)
// @Param        format   query     string  false  "json (default) or text"
// @Success      200      {object}  dto.MessageResponse
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/dictionaries/{version}/messages/{key} [get]
func (h *Handler) GetMessage(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "text" {
		middleware.AbortWithError(c, http.StatusBadRequest, "format must be json or text", nil)
		return
	}
	m, err := h.svc.Message(c.Request.Context(), c.Param("version"), c.Param("key"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if format == "text" {
		c.String(http.StatusOK, dict.Describe(m.Layout()))
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse(m))
}

// GetComponent godoc
// @Summary      Get component
// @Description  Returns a component and its layout tree
// @Tags         components
// @Produce      json
// @Param        version  path      string  true  "Protocol version" example(FIX.4.4)
// @Param        key      path      string  true  "Component name" example(Instrument)
// @Success      200      {object}  dto.ComponentResponse
// @Failure      404      {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/dictionaries/{version}/components/{key} [get]
func (h *Handler) GetComponent(c *gin.Context) {
	comp, err := h.svc.Component(c.Request.Context(), c.Param("version"), c.Param("key"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewComponentResponse(comp))
}

// ListDatatypes godoc
// @Summary      List datatypes
// @Tags         datatypes
// @Produce      json
// @Param        version  path      string  true  "Protocol version" example(FIX.4.4)
// @Success      200      {array}   dto.DatatypeResponse
// @Failure      404      {object}  dto.ErrorResponse  "Version not loaded"
// @Router       /api/v1/dictionaries/{version}/datatypes [get]
func (h *Handler) ListDatatypes(c *gin.Context) {
	dts, err := h.svc.Datatypes(c.Request.Context(), c.Param("version"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]dto.DatatypeResponse, 0, len(dts))
	for _, dt := range dts {
		out = append(out, dto.NewDatatypeResponse(dt))
	}
	c.JSON(http.StatusOK, out)
}

// Export godoc
// @Summary      Export dictionary
// @Description  Writes the dictionary back out as a QuickFIX XML document
// @Tags         dictionaries
// @Produce      xml
// @Param        version  path      string  true  "Protocol version" example(FIX.4.4)
// @Success      200      {string}  string  "QuickFIX XML"
// @Failure      404      {object}  dto.ErrorResponse  "Version not loaded"
// @Router       /api/v1/dictionaries/{version}/export [get]
func (h *Handler) Export(c *gin.Context) {
	version := c.Param("version")
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request.Context(), version, &buf); err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+version+`.xml"`)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

// ListIngestions godoc
// @Summary      List persisted dictionaries
// @Description  Returns the storage catalog of ingested versions
// @Tags         dictionaries
// @Produce      json
// @Success      200  {array}   models.IngestionRecord
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Failure      503  {object}  dto.ErrorResponse  "Storage disabled"
// @Router       /api/v1/ingestions [get]
func (h *Handler) ListIngestions(c *gin.Context) {
	if h.catalog == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "storage disabled", nil)
		return
	}
	recs, err := h.catalog.ListIngested(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if recs == nil {
		c.JSON(http.StatusOK, []struct{}{})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
