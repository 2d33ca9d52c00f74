package api

import (
	"encoding/json"
	"net/http"
)

// ApologyReply is sent whenever a chat message could not be answered.
const ApologyReply = "I apologize, but I encountered an error. Please try again."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

func writeApology(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, ApologyResponse{Reply: ApologyReply})
}
