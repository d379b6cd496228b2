package service

import (
	"strconv"

	classModel "ecole_backend/internals/features/academics/classes/model"
	classService "ecole_backend/internals/features/academics/classes/service"
	enrollmentModel "ecole_backend/internals/features/academics/enrollments/model"
	enrollmentService "ecole_backend/internals/features/academics/enrollments/service"
	optionModel "ecole_backend/internals/features/academics/options/model"
	optionService "ecole_backend/internals/features/academics/options/service"
	yearModel "ecole_backend/internals/features/academics/school_years/model"
	yearService "ecole_backend/internals/features/academics/school_years/service"
	notificationModel "ecole_backend/internals/features/communication/notifications/model"
	notificationService "ecole_backend/internals/features/communication/notifications/service"
	feeModel "ecole_backend/internals/features/finance/fees/model"
	feeService "ecole_backend/internals/features/finance/fees/service"
	paymentModel "ecole_backend/internals/features/finance/payments/model"
	paymentService "ecole_backend/internals/features/finance/payments/service"
	parentModel "ecole_backend/internals/features/people/parents/model"
	parentService "ecole_backend/internals/features/people/parents/service"
	studentModel "ecole_backend/internals/features/people/students/model"
	studentService "ecole_backend/internals/features/people/students/service"
	"ecole_backend/internals/realtime"
	"ecole_backend/internals/revalidate"
)

// Sources are the access functions the live lists read through.
type Sources struct {
	SchoolYears   *yearService.SchoolYearService
	Options       *optionService.OptionService
	Classes       *classService.ClassService
	Parents       *parentService.ParentService
	Students      *studentService.StudentService
	Fees          *feeService.FeeService
	Enrollments   *enrollmentService.EnrollmentService
	Payments      *paymentService.PaymentService
	Notifications *notificationService.NotificationService
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func messages(noun string, feminine bool) realtime.Messages {
	e := ""
	if feminine {
		e = "e"
	}
	return realtime.Messages{
		Inserted: noun + " ajouté" + e,
		Updated:  noun + " mis" + e + " à jour",
		Deleted:  noun + " supprimé" + e,
	}
}

// RegisterAll adds one feed per table of s to fs.
func (fs *Feeds) RegisterAll(s Sources) *Feeds {
	fs.Register(revalidate.EntitySchoolYear, NewFeed[yearModel.SchoolYearModel](s.SchoolYears.List,
		realtime.SyncConfig[yearModel.SchoolYearModel]{
			Table:    revalidate.EntitySchoolYear,
			Key:      func(m yearModel.SchoolYearModel) string { return id(m.IDAnneeScolaire) },
			Reload:   Reload(s.SchoolYears.Get, func(m yearModel.SchoolYearModel) []any { return []any{m.IDAnneeScolaire} }),
			Messages: messages("Année scolaire", true),
		}))

	fs.Register(revalidate.EntityOption, NewFeed[optionModel.OptionModel](s.Options.List,
		realtime.SyncConfig[optionModel.OptionModel]{
			Table:    revalidate.EntityOption,
			Key:      func(m optionModel.OptionModel) string { return id(m.IDOption) },
			Reload:   Reload(s.Options.Get, func(m optionModel.OptionModel) []any { return []any{m.IDOption} }),
			Messages: messages("Option", true),
		}))

	fs.Register(revalidate.EntityClass, NewFeed[classModel.ClassModel](s.Classes.List,
		realtime.SyncConfig[classModel.ClassModel]{
			Table: revalidate.EntityClass,
			Key:   func(m classModel.ClassModel) string { return id(m.IDClasse) },
			Lookups: []realtime.Lookup[classModel.ClassModel]{
				Relation(s.Options.Get,
					func(m *classModel.ClassModel) *int64 { return &m.IDOption },
					func(m *classModel.ClassModel, o *optionModel.OptionModel) { m.Option = o }),
			},
			Reload:   Reload(s.Classes.Get, func(m classModel.ClassModel) []any { return []any{m.IDClasse} }),
			Messages: messages("Classe", true),
		}))

	fs.Register(revalidate.EntityParent, NewFeed[parentModel.ParentModel](s.Parents.List,
		realtime.SyncConfig[parentModel.ParentModel]{
			Table:    revalidate.EntityParent,
			Key:      func(m parentModel.ParentModel) string { return id(m.IDParent) },
			Reload:   Reload(s.Parents.Get, func(m parentModel.ParentModel) []any { return []any{m.IDParent} }),
			Messages: messages("Parent", false),
		}))

	fs.Register(revalidate.EntityStudent, NewFeed[studentModel.StudentModel](s.Students.List,
		realtime.SyncConfig[studentModel.StudentModel]{
			Table: revalidate.EntityStudent,
			Key:   func(m studentModel.StudentModel) string { return id(m.IDEleve) },
			Lookups: []realtime.Lookup[studentModel.StudentModel]{
				Relation(s.Parents.Get,
					func(m *studentModel.StudentModel) *int64 { return m.IDParent },
					func(m *studentModel.StudentModel, p *parentModel.ParentModel) { m.Parent = p }),
			},
			Reload:   Reload(s.Students.Get, func(m studentModel.StudentModel) []any { return []any{m.IDEleve} }),
			Messages: messages("Élève", false),
		}))

	fs.Register(revalidate.EntityFee, NewFeed[feeModel.FeeModel](s.Fees.List,
		realtime.SyncConfig[feeModel.FeeModel]{
			Table: revalidate.EntityFee,
			Key:   func(m feeModel.FeeModel) string { return id(m.IDFrais) },
			Lookups: []realtime.Lookup[feeModel.FeeModel]{
				Relation(s.SchoolYears.Get,
					func(m *feeModel.FeeModel) *int64 { return m.IDAnneeScolaire },
					func(m *feeModel.FeeModel, y *yearModel.SchoolYearModel) { m.AnneeScolaire = y }),
			},
			Reload:   Reload(s.Fees.Get, func(m feeModel.FeeModel) []any { return []any{m.IDFrais} }),
			Messages: messages("Frais", false),
		}))

	fs.Register(revalidate.EntityEnrollment, NewFeed[enrollmentModel.EnrollmentModel](s.Enrollments.List,
		realtime.SyncConfig[enrollmentModel.EnrollmentModel]{
			Table: revalidate.EntityEnrollment,
			Key:   func(m enrollmentModel.EnrollmentModel) string { return m.Key().String() },
			Lookups: []realtime.Lookup[enrollmentModel.EnrollmentModel]{
				Relation(s.Students.Get,
					func(m *enrollmentModel.EnrollmentModel) *int64 { return &m.IDEleve },
					func(m *enrollmentModel.EnrollmentModel, st *studentModel.StudentModel) { m.Eleve = st }),
				Relation(s.Classes.Get,
					func(m *enrollmentModel.EnrollmentModel) *int64 { return &m.IDClasse },
					func(m *enrollmentModel.EnrollmentModel, c *classModel.ClassModel) { m.Classe = c }),
				Relation(s.SchoolYears.Get,
					func(m *enrollmentModel.EnrollmentModel) *int64 { return &m.IDAnneeScolaire },
					func(m *enrollmentModel.EnrollmentModel, y *yearModel.SchoolYearModel) { m.AnneeScolaire = y }),
			},
			Reload:   Reload(s.Enrollments.Get, func(m enrollmentModel.EnrollmentModel) []any { return m.Key().Values() }),
			Messages: messages("Inscription", true),
		}))

	fs.Register(revalidate.EntityPayment, NewFeed[paymentModel.PaymentModel](s.Payments.List,
		realtime.SyncConfig[paymentModel.PaymentModel]{
			Table: revalidate.EntityPayment,
			Key:   func(m paymentModel.PaymentModel) string { return id(m.IDPaiement) },
			Lookups: []realtime.Lookup[paymentModel.PaymentModel]{
				Relation(s.Students.Get,
					func(m *paymentModel.PaymentModel) *int64 { return m.IDEleve },
					func(m *paymentModel.PaymentModel, st *studentModel.StudentModel) { m.Eleve = st }),
				Relation(s.Fees.Get,
					func(m *paymentModel.PaymentModel) *int64 { return m.IDFrais },
					func(m *paymentModel.PaymentModel, f *feeModel.FeeModel) { m.Frais = f }),
			},
			Reload:   Reload(s.Payments.Get, func(m paymentModel.PaymentModel) []any { return []any{m.IDPaiement} }),
			Messages: messages("Paiement", false),
		}))

	fs.Register(revalidate.EntityNotification, NewFeed[notificationModel.NotificationModel](s.Notifications.List,
		realtime.SyncConfig[notificationModel.NotificationModel]{
			Table: revalidate.EntityNotification,
			Key:   func(m notificationModel.NotificationModel) string { return id(m.IDNotification) },
			Lookups: []realtime.Lookup[notificationModel.NotificationModel]{
				Relation(s.Parents.Get,
					func(m *notificationModel.NotificationModel) *int64 { return m.IDParent },
					func(m *notificationModel.NotificationModel, p *parentModel.ParentModel) { m.Parent = p }),
			},
			Reload:   Reload(s.Notifications.Get, func(m notificationModel.NotificationModel) []any { return []any{m.IDNotification} }),
			Messages: messages("Notification", true),
		}))

	return fs
}
