package local

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/podocare-api/internal/domain/entity"
)

// Datos iniciales de cada colección. Los ids son fijos para que las
// referencias entre colecciones sean consistentes tras un reset.

func seedBase(id string, now time.Time, daysAgo int) entity.Base {
	t := now.AddDate(0, 0, -daysAgo).Truncate(time.Minute)
	return entity.Base{ID: id, CreatedAt: t, UpdatedAt: t}
}

func seedPatients(now time.Time) []entity.Patient {
	return []entity.Patient{
		{Base: seedBase("pat-001", now, 90), FirstName: "María", LastName: "Gómez", DocumentType: "CC", DocumentNumber: "52123456", Phone: "3001234567", Email: "maria.gomez@example.com"},
		{Base: seedBase("pat-002", now, 60), FirstName: "José", LastName: "Rodríguez", DocumentType: "CC", DocumentNumber: "80234567", Phone: "3109876543"},
		{Base: seedBase("pat-003", now, 30), FirstName: "Lucía", LastName: "Martínez", DocumentType: "TI", DocumentNumber: "1012345678", Phone: "3204567890", Notes: "Paciente diabética, control mensual"},
	}
}

func seedWorkers(now time.Time) []entity.Worker {
	return []entity.Worker{
		{Base: seedBase("wrk-001", now, 365), FirstName: "Andrea", LastName: "Castaño", DocumentNumber: "43111222", Role: entity.WorkerRoleAdmin, Active: true},
		{Base: seedBase("wrk-002", now, 300), FirstName: "Camilo", LastName: "Peña", DocumentNumber: "1020304050", Role: entity.WorkerRolePodologist, Specialty: "Pie diabético", Active: true},
		{Base: seedBase("wrk-003", now, 200), FirstName: "Sofía", LastName: "Ríos", DocumentNumber: "1098765432", Role: entity.WorkerRoleReceptionist, Active: true},
	}
}

func seedAppointments(now time.Time) []entity.Appointment {
	day := now.Truncate(time.Hour)
	return []entity.Appointment{
		{Base: seedBase("apt-001", now, 7), PatientID: "pat-001", WorkerID: "wrk-002", Date: day.AddDate(0, 0, -7), DurationMinutes: 45, Status: entity.AppointmentCompleted, Reason: "Onicocriptosis", Price: decimal.NewFromInt(80000)},
		{Base: seedBase("apt-002", now, 2), PatientID: "pat-003", WorkerID: "wrk-002", Date: day.AddDate(0, 0, 1), DurationMinutes: 30, Status: entity.AppointmentScheduled, Reason: "Control pie diabético", Price: decimal.NewFromInt(60000)},
		{Base: seedBase("apt-003", now, 1), PatientID: "pat-002", WorkerID: "wrk-002", Date: day.AddDate(0, 0, 3), DurationMinutes: 30, Status: entity.AppointmentConfirmed, Reason: "Quiropodia", Price: decimal.NewFromInt(55000)},
	}
}

func seedCategories(now time.Time) []entity.ProductCategory {
	return []entity.ProductCategory{
		{Base: seedBase("cat-001", now, 180), Name: "Cremas y lociones", Active: true},
		{Base: seedBase("cat-002", now, 180), Name: "Plantillas", Description: "Ortopédicas y de descarga", Active: true},
	}
}

func seedProducts(now time.Time) []entity.Product {
	return []entity.Product{
		{Base: seedBase("prd-001", now, 120), Name: "Crema hidratante urea 10%", Code: "CRM-UREA10", CategoryID: "cat-001", Price: decimal.NewFromInt(35000), Cost: decimal.NewFromInt(18000), Stock: 24, MinStock: 5, Active: true},
		{Base: seedBase("prd-002", now, 120), Name: "Antimicótico tópico", Code: "CRM-ANTIF", CategoryID: "cat-001", Price: decimal.NewFromInt(28000), Cost: decimal.NewFromInt(12500), Stock: 3, MinStock: 5, Active: true},
		{Base: seedBase("prd-003", now, 90), Name: "Plantilla de silicona", Code: "PLT-SIL", CategoryID: "cat-002", Price: decimal.NewFromInt(65000), Cost: decimal.NewFromInt(30000), Stock: 10, MinStock: 2, Active: true},
	}
}

func seedPayments(now time.Time) []entity.Payment {
	return []entity.Payment{
		{Base: seedBase("pay-001", now, 7), PatientID: "pat-001", AppointmentID: "apt-001", Amount: decimal.NewFromInt(80000), Method: entity.PaymentCash, Status: entity.PaymentCompleted, Date: now.AddDate(0, 0, -7)},
	}
}

func seedAbonos(now time.Time) []entity.Abono {
	return []entity.Abono{
		{Base: seedBase("abn-001", now, 10), PatientID: "pat-003", Amount: decimal.NewFromInt(200000), RemainingAmount: decimal.NewFromInt(200000), Status: entity.AbonoActive, PaymentMethod: entity.PaymentTransfer, Date: now.AddDate(0, 0, -10)},
	}
}

func seedPackages(now time.Time) []entity.Package {
	return []entity.Package{
		{Base: seedBase("pkg-001", now, 200), Name: "Plan pie diabético x6", Description: "Seis controles mensuales", Sessions: 6, Price: decimal.NewFromInt(300000), ValidityDays: 180, Active: true},
		{Base: seedBase("pkg-002", now, 200), Name: "Quiropodia x4", Sessions: 4, Price: decimal.NewFromInt(190000), ValidityDays: 120, Active: true},
	}
}

func seedPatientPackages(now time.Time) []entity.PatientPackage {
	expires := now.AddDate(0, 0, 150)
	return []entity.PatientPackage{
		{Base: seedBase("ppk-001", now, 30), PatientID: "pat-003", PackageID: "pkg-001", TotalSessions: 6, UsedSessions: 1, RemainingSessions: 5, Price: decimal.NewFromInt(300000), PurchaseDate: now.AddDate(0, 0, -30), ExpiresAt: &expires, Status: entity.PatientPackageActive},
	}
}
