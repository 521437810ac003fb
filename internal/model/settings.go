package model

// PlatformSettings is the fully typed view of the platformSettings
// key/value table. Storage keeps every value as a string; the settings
// repository owns the per-key encode/decode rules and merges persisted
// rows over the defaults below, so a fresh or partially populated
// table still yields a complete struct.
type PlatformSettings struct {
	SiteName           string  `json:"site_name"`
	SupportEmail       string  `json:"support_email"`
	Currency           string  `json:"currency"`
	MaintenanceMode    bool    `json:"maintenance_mode"`
	AllowRegistration  bool    `json:"allow_registration"`
	AutoApproveOwners  bool    `json:"auto_approve_owners"`
	MaxBookingsPerUser int     `json:"max_bookings_per_user"`
	CommissionRate     float64 `json:"commission_rate"`
}

// DefaultPlatformSettings returns the hardcoded defaults used both by
// the seeder (inserted only when a key is absent) and by GetAll as the
// base the persisted rows are merged onto.
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		SiteName:           "RentHaven",
		SupportEmail:       "support@renthaven.example",
		Currency:           "USD",
		MaintenanceMode:    false,
		AllowRegistration:  true,
		AutoApproveOwners:  false,
		MaxBookingsPerUser: 10,
		CommissionRate:     0.05,
	}
}
