package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/workpoint-hq/attendance-console/internal/handler/http/response"
	reportService "github.com/workpoint-hq/attendance-console/internal/service/report"
)

type ReportHandler interface {
	UserMonth(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService *reportService.ReportServiceImpl
}

func NewReportHandler(svc *reportService.ReportServiceImpl) ReportHandler {
	return &reportHandlerImpl{reportService: svc}
}

// UserMonth implements ReportHandler. year and month default to the current
// UTC month; userId is optional and resolved upstream when absent.
func (h *reportHandlerImpl) UserMonth(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "month must be a number", nil)
			return
		}
		month = parsed
	}

	result, err := h.reportService.UserMonth(r.Context(), r.URL.Query().Get("userId"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
