package models

// LineItem is one entry in the local cart. Title, price and image are a
// snapshot taken when the product was added, not a live reference.
type LineItem struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Qty   int     `json:"qty"`
}
