package calculator

import "go-chi-calculator/internal/history"

// KeyRequest is the JSON body for POST /calculator/keys.
type KeyRequest struct {
	Key string `json:"key"` // KeyboardEvent.key, e.g. "7", "*", "Enter"
}

// DisplayResponse is what the renderer draws after every action.
type DisplayResponse struct {
	Value    string `json:"value"`
	Equation string `json:"equation"`
	// PreventDefault tells a keyboard adapter to cancel the browser default.
	PreventDefault bool           `json:"prevent_default,omitempty"`
	Recorded       *history.Entry `json:"recorded,omitempty"`
}

// HistoryResponse is the JSON response for the history endpoints.
type HistoryResponse struct {
	Visible bool            `json:"visible"`
	Entries []history.Entry `json:"entries"`
}

func historyResponse(p Panel) HistoryResponse {
	entries := p.Entries
	if entries == nil {
		entries = []history.Entry{}
	}
	return HistoryResponse{Visible: p.Visible, Entries: entries}
}
