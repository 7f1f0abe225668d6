package domain

import "time"

type Role string

const (
	RoleStudent    Role = "student"
	RoleStaff      Role = "staff"
	RoleSuperAdmin Role = "superadmin"
)

// Staff is an expert offering mentorship sessions.
type Staff struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Expertise     []string   `json:"expertise,omitempty"`
	CategoryID    string     `json:"categoryId,omitempty"`
	SubcategoryID string     `json:"subcategoryId,omitempty"`
	HourlyRate    float64    `json:"hourlyRate"`
	IsVerified    bool       `json:"isVerified"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

type Student struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// AccountUpdate is a partial update for staff or student records.
type AccountUpdate struct {
	Name       *string  `json:"name,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	IsActive   *bool    `json:"isActive,omitempty"`
	IsVerified *bool    `json:"isVerified,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
}
