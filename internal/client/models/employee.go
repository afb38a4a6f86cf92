package models

import "fmt"

// Employee statuses known to the backend.
const (
	EmployeeActive   = "ACTIF"
	EmployeeInactive = "INACTIF"
	EmployeeOnLeave  = "CONGE"
	EmployeeRetired  = "RETRAITE"
)

type Employee struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	Position   string `json:"poste"`
	Department string `json:"department"`
	Status     string `json:"status,omitempty"`
}

func (e Employee) String() string {
	return fmt.Sprintf("#%d %s %s - %s (%s)", e.ID, e.Name, e.Surname, e.Position, e.Department)
}
