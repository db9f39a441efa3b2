package models

import "time"

// RegistrationForm holds the applicant's input while the registration
// conversation is in progress. It is treated as an immutable value: field
// edits go through Apply, which returns a new form. Role and approval are
// not part of the form; they are fixed when the driver record is built.
type RegistrationForm struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	MotorcycleModel string
	MotorcycleRegNo string
	Password        string
	ConfirmPassword string
	Birthdate       time.Time
}

type FormField string

const (
	FieldFirstName       FormField = "first_name"
	FieldLastName        FormField = "last_name"
	FieldEmail           FormField = "email"
	FieldPhoneNumber     FormField = "phone_number"
	FieldMotorcycleModel FormField = "motorcycle_model"
	FieldMotorcycleRegNo FormField = "motorcycle_reg_no"
	FieldPassword        FormField = "password"
	FieldConfirmPassword FormField = "confirm_password"
)

// Apply returns a copy of the form with one text field replaced.
// Unknown fields leave the form unchanged.
func (f RegistrationForm) Apply(field FormField, value string) RegistrationForm {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldPhoneNumber:
		f.PhoneNumber = value
	case FieldMotorcycleModel:
		f.MotorcycleModel = value
	case FieldMotorcycleRegNo:
		f.MotorcycleRegNo = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	}
	return f
}

// WithBirthdate returns a copy of the form with the birthdate replaced.
func (f RegistrationForm) WithBirthdate(t time.Time) RegistrationForm {
	f.Birthdate = t
	return f
}

// Record builds the driver record persisted after account creation.
// Role and approval status are fixed here and never user-editable.
func (f RegistrationForm) Record(accountID int64) *DriverRecord {
	return &DriverRecord{
		AccountID:        accountID,
		FirstName:        f.FirstName,
		LastName:         f.LastName,
		Birthdate:        f.Birthdate,
		MotorcycleModel:  f.MotorcycleModel,
		MotorcycleRegNo:  f.MotorcycleRegNo,
		PhoneNumber:      f.PhoneNumber,
		Role:             RoleDriver,
		IsApprovedDriver: false,
	}
}
