package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ankitkhedar12/trading-journal/src/config"
	"github.com/ankitkhedar12/trading-journal/src/logger"
	"github.com/ankitkhedar12/trading-journal/src/models"
	"github.com/ankitkhedar12/trading-journal/src/security/validation"
	"github.com/ankitkhedar12/trading-journal/src/services"
	"github.com/ankitkhedar12/trading-journal/src/utils"
)

type TradeHandler struct {
	importService services.ImportService
	statsService  services.StatsService
	tradeStore    services.TradeStore
}

func NewTradeHandler(importService services.ImportService, statsService services.StatsService, tradeStore services.TradeStore) *TradeHandler {
	return &TradeHandler{
		importService: importService,
		statsService:  statsService,
		tradeStore:    tradeStore,
	}
}

// HandleImport accepts one broker export file — multipart "file" field or a
// raw CSV/TSV request body — runs the normalization pipeline and reports
// how many rows were accepted and how many were dropped.
func (h *TradeHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	buf, err := h.readExportPayload(r)
	if err != nil {
		ctxLogger.Warn("Rejected import payload", "error", err)
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.importService.ImportExport(buf)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			ctxLogger.Warn("Import parsing failed", "error", err)
			sendJSONError(w, "Could not parse the uploaded export", http.StatusBadRequest)
			return
		}
		// Each row is an independent upsert, so rows stored before the
		// failure stand; report both the successes and the failure.
		ctxLogger.Error("Import storage failure", "accepted", resultCount(result), "error", err)
		sendJSONError(w, "Import failed partway through; re-upload is safe", http.StatusInternalServerError)
		return
	}

	ctxLogger.Info("Import completed", "count", result.Count, "skipped", result.Skipped)
	utils.SendJSON(w, result, http.StatusOK)
}

func resultCount(result *models.ImportResult) int {
	if result == nil {
		return 0
	}
	return result.Count
}

func (h *TradeHandler) readExportPayload(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
			return nil, errors.New("failed to parse upload or file too large")
		}
		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			return nil, errors.New("missing 'file' field in upload")
		}
		defer file.Close()

		if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
			return nil, errors.New("uploaded file too large")
		}
		if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
			return nil, err
		}
		if err := validation.ValidateExportContent(file); err != nil {
			return nil, err
		}
		return io.ReadAll(file)
	}

	// Raw body upload: the caller sends the file bytes directly.
	body := http.MaxBytesReader(nil, r.Body, config.Cfg.MaxUploadSizeBytes)
	buf, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.New("failed to read request body or body too large")
	}
	if len(buf) == 0 {
		return nil, errors.New("empty request body")
	}
	return buf, nil
}

// HandleGetTrades returns every stored trade, newest open time first.
func (h *TradeHandler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.tradeStore.ListAll(false)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list trades", "error", err)
		sendJSONError(w, "Failed to retrieve trades", http.StatusInternalServerError)
		return
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	utils.SendJSON(w, trades, http.StatusOK)
}

// HandleGetDashboardStats returns the cumulative P&L curve and headline
// quick stats.
func (h *TradeHandler) HandleGetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetDashboardStats()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to compute dashboard stats", "error", err)
		sendJSONError(w, "Failed to compute dashboard stats", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, stats, http.StatusOK)
}

// HandleGetCalendar returns per-day pnl sums and trade counts.
func (h *TradeHandler) HandleGetCalendar(w http.ResponseWriter, r *http.Request) {
	days, err := h.statsService.GetCalendar()
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to compute calendar buckets", "error", err)
		sendJSONError(w, "Failed to compute calendar data", http.StatusInternalServerError)
		return
	}
	if days == nil {
		days = []models.CalendarDay{}
	}
	utils.SendJSON(w, days, http.StatusOK)
}
