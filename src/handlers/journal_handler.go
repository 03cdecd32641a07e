package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ankitkhedar12/trading-journal/src/database"
	"github.com/ankitkhedar12/trading-journal/src/logger"
	"github.com/ankitkhedar12/trading-journal/src/model"
	"github.com/ankitkhedar12/trading-journal/src/models"
	"github.com/ankitkhedar12/trading-journal/src/parsers"
	"github.com/ankitkhedar12/trading-journal/src/security/validation"
	"github.com/ankitkhedar12/trading-journal/src/utils"
)

type JournalHandler struct{}

func NewJournalHandler() *JournalHandler {
	return &JournalHandler{}
}

type journalEntryRequest struct {
	Date    string   `json:"date"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	Tags    []string `json:"tags"`
}

// HandleCreateEntry stores one journal entry for the authenticated user.
// The entry date goes through the same lenient date normalization as trade
// timestamps, so journal clients can send broker-style dates.
func (h *JournalHandler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req journalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	subject := validation.SanitizeText(req.Subject)
	if err := validation.ValidateStringMaxLength(subject, 200, "Subject"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	text := validation.SanitizeText(req.Text)

	date, err := parsers.ParseInstant(parsers.NormalizeDate(req.Date))
	if err != nil {
		date = time.Now().UTC()
	}

	entry := &models.JournalEntry{
		UserID:  userID,
		Date:    date,
		Subject: subject,
		Text:    text,
		Tags:    validation.SanitizeTags(req.Tags),
	}
	if err := model.CreateJournalEntry(database.DB, entry); err != nil {
		logger.FromContext(r.Context()).Error("Failed to create journal entry", "error", err)
		sendJSONError(w, "Failed to create journal entry", http.StatusInternalServerError)
		return
	}

	utils.SendJSON(w, entry, http.StatusCreated)
}

// HandleGetEntries returns the user's journal entries, newest first.
func (h *JournalHandler) HandleGetEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	entries, err := model.ListJournalEntries(database.DB, userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list journal entries", "error", err)
		sendJSONError(w, "Failed to retrieve journal entries", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	utils.SendJSON(w, entries, http.StatusOK)
}
