package entity

import "time"

// Roles de trabajador.
const (
	WorkerRoleAdmin        = "admin"
	WorkerRolePodologist   = "podologist"
	WorkerRoleAssistant    = "assistant"
	WorkerRoleReceptionist = "receptionist"
)

// Worker profesional o empleado de la clínica.
type Worker struct {
	Base
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DocumentNumber string `json:"documentNumber"`
	Role           string `json:"role"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Specialty      string `json:"specialty,omitempty"`
	Active         bool   `json:"active"`
}

// FullName nombre y apellido.
func (w Worker) FullName() string { return w.FirstName + " " + w.LastName }

// WorkerInput payload de creación. Active nil se interpreta como activo.
type WorkerInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DocumentNumber string `json:"documentNumber"`
	Role           string `json:"role"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Specialty      string `json:"specialty,omitempty"`
	Active         *bool  `json:"active,omitempty"`
}

// Validate nombre y rol válido son obligatorios.
func (in WorkerInput) Validate() error {
	if err := required("trabajador", "firstName", in.FirstName); err != nil {
		return err
	}
	return oneOf("trabajador", "role", in.Role,
		WorkerRoleAdmin, WorkerRolePodologist, WorkerRoleAssistant, WorkerRoleReceptionist)
}

// Build materializa el trabajador.
func (in WorkerInput) Build(id string, now time.Time) Worker {
	active := true
	set(&active, in.Active)
	return Worker{
		Base:           newBase(id, now),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		DocumentNumber: in.DocumentNumber,
		Role:           in.Role,
		Phone:          in.Phone,
		Email:          in.Email,
		Specialty:      in.Specialty,
		Active:         active,
	}
}

// WorkerPatch actualización parcial.
type WorkerPatch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
	Role           *string `json:"role,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	Specialty      *string `json:"specialty,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// Apply aplica los campos presentes.
func (p WorkerPatch) Apply(item *Worker, now time.Time) {
	set(&item.FirstName, p.FirstName)
	set(&item.LastName, p.LastName)
	set(&item.DocumentNumber, p.DocumentNumber)
	set(&item.Role, p.Role)
	set(&item.Phone, p.Phone)
	set(&item.Email, p.Email)
	set(&item.Specialty, p.Specialty)
	set(&item.Active, p.Active)
	item.UpdatedAt = now
}
