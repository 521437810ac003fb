package model

// Property is a listing owned by an owner-role user. A freshly created
// listing always starts in `pending` and only the moderation workflow
// moves it to `verified` or `rejected`. Editing a rejected listing
// sends it back to `pending` for re-review. Price is the nightly rate
// as a plain float; currency handling lives in the platform settings.
type Property struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Location    string  `json:"location,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// Listing status values stored in properties.status.
const (
	PropertyPending  = "pending"
	PropertyVerified = "verified"
	PropertyRejected = "rejected"
)
