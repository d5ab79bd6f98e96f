package models

import (
	"time"
)

// RegistrationFields are the attendee-supplied parts of a registration.
type RegistrationFields struct {
	FullName    string `json:"fullName" gorm:"column:full_name;not null"`
	Email       string `json:"email" gorm:"column:email;not null;uniqueIndex"`
	Semester    string `json:"semester" gorm:"column:semester;not null"`
	PhoneNumber string `json:"phone_number" gorm:"column:phone_number;not null;uniqueIndex"`
	Branch      string `json:"branch" gorm:"column:branch;not null"`
	College     string `json:"college" gorm:"column:college;not null"`
}

type Registration struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RegistrationFields `gorm:"embedded"`
	RegistrationDate   time.Time `json:"registration_date" gorm:"column:registration_date;not null;index"`
}

func (Registration) TableName() string {
	return "registrations"
}

// Card is the public projection of a registration served by the card page.
type Card struct {
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	Semester         string    `json:"semester"`
	Branch           string    `json:"branch"`
	College          string    `json:"college"`
	PhoneNumber      string    `json:"phone_number"`
	RegistrationDate time.Time `json:"registration_date"`
}

func (r Registration) Card() Card {
	return Card{
		FullName:         r.FullName,
		Email:            r.Email,
		Semester:         r.Semester,
		Branch:           r.Branch,
		College:          r.College,
		PhoneNumber:      r.PhoneNumber,
		RegistrationDate: r.RegistrationDate,
	}
}
