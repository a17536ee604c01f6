package entity

import "time"

// Patient paciente de la clínica.
type Patient struct {
	Base
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	DocumentType   string     `json:"documentType"` // CC, TI, CE, PAS
	DocumentNumber string     `json:"documentNumber"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
	Address        string     `json:"address,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// FullName nombre y apellido.
func (p Patient) FullName() string { return p.FirstName + " " + p.LastName }

// PatientInput payload de creación.
type PatientInput struct {
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	DocumentType   string     `json:"documentType"`
	DocumentNumber string     `json:"documentNumber"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
	Address        string     `json:"address,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// Validate nombre, apellido y documento son obligatorios.
func (in PatientInput) Validate() error {
	if err := required("paciente", "firstName", in.FirstName); err != nil {
		return err
	}
	if err := required("paciente", "lastName", in.LastName); err != nil {
		return err
	}
	return required("paciente", "documentNumber", in.DocumentNumber)
}

// Build materializa el paciente.
func (in PatientInput) Build(id string, now time.Time) Patient {
	docType := in.DocumentType
	if docType == "" {
		docType = "CC"
	}
	return Patient{
		Base:           newBase(id, now),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentType:   docType,
		DocumentNumber: in.DocumentNumber,
		Phone:          in.Phone,
		Email:          in.Email,
		BirthDate:      in.BirthDate,
		Address:        in.Address,
		Notes:          in.Notes,
	}
}

// PatientPatch actualización parcial.
type PatientPatch struct {
	FirstName      *string    `json:"firstName,omitempty"`
	LastName       *string    `json:"lastName,omitempty"`
	DocumentType   *string    `json:"documentType,omitempty"`
	DocumentNumber *string    `json:"documentNumber,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// Apply aplica los campos presentes.
func (p PatientPatch) Apply(item *Patient, now time.Time) {
	set(&item.FirstName, p.FirstName)
	set(&item.LastName, p.LastName)
	set(&item.DocumentType, p.DocumentType)
	set(&item.DocumentNumber, p.DocumentNumber)
	set(&item.Phone, p.Phone)
	set(&item.Email, p.Email)
	if p.BirthDate != nil {
		item.BirthDate = p.BirthDate
	}
	set(&item.Address, p.Address)
	set(&item.Notes, p.Notes)
	item.UpdatedAt = now
}
