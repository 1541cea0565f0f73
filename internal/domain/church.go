package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type ChurchStatus string

const (
	StatusPending  ChurchStatus = "pending"
	StatusVerified ChurchStatus = "verified"
	StatusRejected ChurchStatus = "rejected"
)

// ParseChurchStatus resolves a status name case-insensitively. Unknown names
// report ok=false; listing treats them as "no status filter", never an error.
func ParseChurchStatus(s string) (ChurchStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "verified":
		return StatusVerified, true
	case "rejected":
		return StatusRejected, true
	default:
		return "", false
	}
}

func IsValidChurchStatus(s ChurchStatus) bool {
	return s == StatusPending || s == StatusVerified || s == StatusRejected
}

// Church is a directory entry. CreatedBy/UpdatedBy hold user emails for audit
// only; they are not foreign keys. ServiceSchedule is the raw JSON document as
// stored; DecodeServiceSchedule produces the structured form.
type Church struct {
	ID              string
	Name            string
	Address         string
	City            string
	State           string
	ZipCode         string
	Phone           string
	Email           string
	Website         string
	Denomination    string
	Latitude        *float64
	Longitude       *float64
	Status          ChurchStatus
	Description     string
	ServiceSchedule string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
	UpdatedBy       string
	IsActive        bool
}

// HasCoordinates reports whether both latitude and longitude are set.
func (c Church) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

type ServiceSchedule struct {
	Services []ServiceTime `json:"services"`
}

type ServiceTime struct {
	Day  string `json:"day"`
	Time string `json:"time"`
	Type string `json:"type"` // e.g. "Sunday Service", "Bible Study"
}

// DecodeServiceSchedule parses the stored schedule JSON. Empty or malformed
// documents decode to nil; a bad stored blob must not break read paths.
func DecodeServiceSchedule(raw string) *ServiceSchedule {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var s ServiceSchedule
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil
	}
	return &s
}

// EncodeServiceSchedule serializes a schedule for storage. Nil encodes to "".
func EncodeServiceSchedule(s *ServiceSchedule) string {
	if s == nil {
		return ""
	}
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(b)
}
