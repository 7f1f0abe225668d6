package domain

import "time"

// WebsiteStats are the headline counters shown on the public site.
type WebsiteStats struct {
	TotalExperts     int        `json:"totalExperts"`
	TotalStudents    int        `json:"totalStudents"`
	TotalSessions    int        `json:"totalSessions"`
	SatisfactionRate float64    `json:"satisfactionRate"`
	CountriesReached int        `json:"countriesReached"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}
