package models

import (
	"fmt"
	"time"
)

// Alert statuses and severity levels known to the backend.
const (
	AlertStatusNew        = "NOUVEAU"
	AlertStatusInProgress = "EN_COURS"
	AlertStatusResolved   = "RESOLU"
	AlertStatusIgnored    = "IGNORE"

	AlertLevelLow      = "FAIBLE"
	AlertLevelMedium   = "MOYEN"
	AlertLevelHigh     = "ELEVE"
	AlertLevelCritical = "CRITIQUE"
)

// Alert is a missing-protective-equipment detection raised against an
// employee.
type Alert struct {
	ID               int64     `json:"id"`
	Employee         User      `json:"employe"`
	DetectionModel   int64     `json:"modeleIA"`
	MissingEquipment string    `json:"typeEpiManquants"`
	Image            string    `json:"image"`
	Status           string    `json:"statut"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Level            string    `json:"niveau"`
	Comment          string    `json:"commentaire"`
}

func (a Alert) String() string {
	return fmt.Sprintf("#%d %s [%s/%s] %s %s", a.ID, a.CreatedAt.Format("02/01/2006 15:04"),
		a.Level, a.Status, a.Employee.Username, a.MissingEquipment)
}

// AlertInput is the writable subset of Alert sent on creation.
type AlertInput struct {
	Employee         int64  `json:"employe"`
	DetectionModel   int64  `json:"modeleIA"`
	MissingEquipment string `json:"typeEpiManquants"`
	Status           string `json:"statut,omitempty"`
	Level            string `json:"niveau,omitempty"`
	Comment          string `json:"commentaire,omitempty"`
}
