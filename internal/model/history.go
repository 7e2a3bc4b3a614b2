package model

// OrderEntry is an immutable record of a toner order.
type OrderEntry struct {
	ID        int64  `json:"id"`
	OrderedOn string `json:"ordered_on"`
	TonerID   int64  `json:"toner_id"`
	Model     string `json:"model"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// ConsumptionEvent is an immutable record of one consumed toner unit.
type ConsumptionEvent struct {
	ID       int64  `json:"id"`
	UsedOn   string `json:"used_on"`
	TonerID  int64  `json:"toner_id"`
	Model    string `json:"model,omitempty"`
	Quantity int    `json:"quantity"`
}

// Order note kinds, stored canonically. Display translation is a client
// concern.
const (
	OrderNoteManual    = "manual"
	OrderNoteAutomatic = "automatic"
)
