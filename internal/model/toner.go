package model

// Toner represents a toner cartridge model tracked by stock level.
type Toner struct {
	ID          int64  `json:"id"`
	Model       string `json:"model"`
	Description string `json:"description,omitempty"`
	MinStock    int    `json:"min_stock"`
	Stock       int    `json:"stock"`
	DriverLink  string `json:"driver_link,omitempty"`
}

// OrderLine is one row of the reorder list: a toner below its minimum stock
// and the quantity needed to bring it back up.
type OrderLine struct {
	TonerID  int64  `json:"toner_id"`
	Model    string `json:"model"`
	MinStock int    `json:"min_stock"`
	Stock    int    `json:"stock"`
	ToOrder  int    `json:"to_order"`
}
