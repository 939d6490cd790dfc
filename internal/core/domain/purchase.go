package domain

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// PurchaseRequest is a cook's request to procure a product. The backend owns
// it; the client only reads lists and flips the status through the approval
// endpoint.
type PurchaseRequest struct {
	ID                int           `json:"id"`
	ProductName       string        `json:"product_name"`
	Quantity          int           `json:"quantity"`
	Unit              string        `json:"unit"`
	Status            RequestStatus `json:"status"`
	CreatedByUsername string        `json:"created_by_username,omitempty"`
}
