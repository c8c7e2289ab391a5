package entity

import "time"

// LeadImage foto adjunta a un lead. Inmutable después de subirse;
// la URL firmada se regenera al leer, no es estado persistido nuevo.
type LeadImage struct {
	ID          string
	LeadID      string
	StoragePath string
	URL         string
	UploadedBy  string
	UploadedAt  time.Time
}
