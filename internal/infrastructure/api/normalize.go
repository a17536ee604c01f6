package api

import (
	"encoding/json"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// Un normalizador por entidad: los campos de referencia (patientId, workerId,
// categoryId, productId, packageId) llegan como id o como objeto y se separan
// en xID + x. Los ids de documento "_id" se copian a ID.

type mongoID struct {
	MongoID json.RawMessage `json:"_id"`
}

func (m mongoID) or(id string) string { return firstNonEmpty(id, scalarString(m.MongoID)) }

// refOf devuelve el id y el objeto embebido; prefiere el objeto ya presente
// en la entidad si el servidor envió ambos.
func refOf[T entity.Entity](ref Ref[T], current *T, setID func(*T, string)) (string, *T) {
	value := current
	if value == nil {
		value = ref.Value
	}
	id := ref.ID
	if value != nil {
		if id != "" {
			setID(value, id)
		}
		id = firstNonEmpty(id, (*value).GetID())
	}
	return id, value
}

func setPatientID(p *entity.Patient, id string) {
	if p.ID == "" {
		p.ID = id
	}
}

func setWorkerID(w *entity.Worker, id string) {
	if w.ID == "" {
		w.ID = id
	}
}

func setCategoryID(c *entity.ProductCategory, id string) {
	if c.ID == "" {
		c.ID = id
	}
}

func setProductID(p *entity.Product, id string) {
	if p.ID == "" {
		p.ID = id
	}
}

func setPackageID(p *entity.Package, id string) {
	if p.ID == "" {
		p.ID = id
	}
}

func decodePatient(raw json.RawMessage) (entity.Patient, error) {
	var w struct {
		entity.Patient
		mongoID
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Patient{}, err
	}
	p := w.Patient
	p.ID = w.or(p.ID)
	return p, nil
}

func decodeWorker(raw json.RawMessage) (entity.Worker, error) {
	var w struct {
		entity.Worker
		mongoID
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Worker{}, err
	}
	out := w.Worker
	out.ID = w.or(out.ID)
	return out, nil
}

func decodeAppointment(raw json.RawMessage) (entity.Appointment, error) {
	var w struct {
		entity.Appointment
		mongoID
		PatientRef Ref[entity.Patient] `json:"patientId"`
		WorkerRef  Ref[entity.Worker]  `json:"workerId"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Appointment{}, err
	}
	a := w.Appointment
	a.ID = w.or(a.ID)
	a.PatientID, a.Patient = refOf(w.PatientRef, a.Patient, setPatientID)
	a.WorkerID, a.Worker = refOf(w.WorkerRef, a.Worker, setWorkerID)
	return a, nil
}

func decodeProductCategory(raw json.RawMessage) (entity.ProductCategory, error) {
	var w struct {
		entity.ProductCategory
		mongoID
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.ProductCategory{}, err
	}
	c := w.ProductCategory
	c.ID = w.or(c.ID)
	return c, nil
}

func decodeProduct(raw json.RawMessage) (entity.Product, error) {
	var w struct {
		entity.Product
		mongoID
		CategoryRef Ref[entity.ProductCategory] `json:"categoryId"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Product{}, err
	}
	p := w.Product
	p.ID = w.or(p.ID)
	p.CategoryID, p.Category = refOf(w.CategoryRef, p.Category, setCategoryID)
	return p, nil
}

func decodeProductMovement(raw json.RawMessage) (entity.ProductMovement, error) {
	var w struct {
		entity.ProductMovement
		mongoID
		ProductRef Ref[entity.Product] `json:"productId"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.ProductMovement{}, err
	}
	m := w.ProductMovement
	m.ID = w.or(m.ID)
	m.ProductID, m.Product = refOf(w.ProductRef, m.Product, setProductID)
	return m, nil
}

func decodePayment(raw json.RawMessage) (entity.Payment, error) {
	var w struct {
		entity.Payment
		mongoID
		PatientRef Ref[entity.Patient] `json:"patientId"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Payment{}, err
	}
	p := w.Payment
	p.ID = w.or(p.ID)
	p.PatientID, p.Patient = refOf(w.PatientRef, p.Patient, setPatientID)
	return p, nil
}

func decodeSale(raw json.RawMessage) (entity.Sale, error) {
	var w struct {
		entity.Sale
		mongoID
		PatientRef Ref[entity.Patient] `json:"patientId"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Sale{}, err
	}
	s := w.Sale
	s.ID = w.or(s.ID)
	s.PatientID, s.Patient = refOf(w.PatientRef, s.Patient, setPatientID)
	if s.Items == nil {
		s.Items = []entity.SaleItem{}
	}
	return s, nil
}

func decodeAbono(raw json.RawMessage) (entity.Abono, error) {
	var w struct {
		entity.Abono
		mongoID
		PatientRef Ref[entity.Patient] `json:"patientId"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Abono{}, err
	}
	a := w.Abono
	a.ID = w.or(a.ID)
	a.PatientID, a.Patient = refOf(w.PatientRef, a.Patient, setPatientID)
	return a, nil
}

func decodeAbonoUsage(raw json.RawMessage) (entity.AbonoUsage, error) {
	var w struct {
		entity.AbonoUsage
		mongoID
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.AbonoUsage{}, err
	}
	u := w.AbonoUsage
	u.ID = w.or(u.ID)
	return u, nil
}

func decodePackage(raw json.RawMessage) (entity.Package, error) {
	var w struct {
		entity.Package
		mongoID
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.Package{}, err
	}
	p := w.Package
	p.ID = w.or(p.ID)
	return p, nil
}

func decodePatientPackage(raw json.RawMessage) (entity.PatientPackage, error) {
	var w struct {
		entity.PatientPackage
		mongoID
		PatientRef Ref[entity.Patient] `json:"patientId"`
		PackageRef Ref[entity.Package] `json:"packageId"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.PatientPackage{}, err
	}
	p := w.PatientPackage
	p.ID = w.or(p.ID)
	p.PatientID, p.Patient = refOf(w.PatientRef, p.Patient, setPatientID)
	p.PackageID, p.Package = refOf(w.PackageRef, p.Package, setPackageID)
	return p, nil
}

func decodePackageSession(raw json.RawMessage) (entity.PackageSession, error) {
	var w struct {
		entity.PackageSession
		mongoID
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return entity.PackageSession{}, err
	}
	s := w.PackageSession
	s.ID = w.or(s.ID)
	return s, nil
}
