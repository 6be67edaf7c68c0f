package domain

import "time"

// Role is the closed set of staff roles. Each role carries a distinct
// concurrent order-handling capacity and a stat bias applied at generation.
type Role string

const (
	RoleTrainee    Role = "trainee"
	RoleSpeedster  Role = "speedster"
	RoleSpecialist Role = "specialist"
	RoleManager    Role = "manager"
)

// AllRoles lists every valid role, used by recruitment's uniform roll
var AllRoles = []Role{RoleTrainee, RoleSpeedster, RoleSpecialist, RoleManager}

// Valid reports whether the role is one of the closed enum values
func (r Role) Valid() bool {
	switch r {
	case RoleTrainee, RoleSpeedster, RoleSpecialist, RoleManager:
		return true
	}
	return false
}

// Capacity returns how many concurrent orders the role can handle
func (r Role) Capacity() int {
	switch r {
	case RoleTrainee, RoleSpeedster:
		return 2
	case RoleSpecialist:
		return 3
	case RoleManager:
		return 4
	}
	return 0
}

// Employee is a hired staff member. Wages accrue continuously into
// UnpaidWagesCents; morale drops while wages stay unpaid.
type Employee struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Role              Role      `json:"role"`
	SalaryPerDayCents Money     `json:"salary_per_day_cents"`
	Speed             int       `json:"speed"`   // 0-100
	Quality           int       `json:"quality"` // 0-100
	Morale            int       `json:"morale"`  // 0-100, floored at 0
	UnpaidWagesCents  Money     `json:"unpaid_wages_cents"`
	HiredAt           time.Time `json:"hired_at"`
}

// Candidate is an unhired applicant sitting in the recruitment pool
type Candidate struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Role              Role      `json:"role"`
	SalaryPerDayCents Money     `json:"salary_per_day_cents"`
	Speed             int       `json:"speed"`
	Quality           int       `json:"quality"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// Hire promotes a candidate to an employee at the given time
func (c Candidate) Hire(now time.Time) Employee {
	return Employee{
		ID:                c.ID,
		Name:              c.Name,
		Role:              c.Role,
		SalaryPerDayCents: c.SalaryPerDayCents,
		Speed:             c.Speed,
		Quality:           c.Quality,
		Morale:            MaxPercentScale,
		HiredAt:           now,
	}
}
