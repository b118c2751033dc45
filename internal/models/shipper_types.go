package models

// Shipper is the pickup/return information used when dispatching orders.
type Shipper struct {
	ID            string `json:"_id,omitempty"`
	StoreID       string `json:"storeId,omitempty"`
	StoreName     string `json:"storeName"`
	LocationName  string `json:"locationName"`
	Address       string `json:"address"`
	ReturnAddress string `json:"returnAddress"`
	City          string `json:"city"`
	PhoneNumber   string `json:"phoneNumber"`
}
