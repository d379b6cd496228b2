package details

import (
	"gorm.io/gorm"

	classService "ecole_backend/internals/features/academics/classes/service"
	enrollmentService "ecole_backend/internals/features/academics/enrollments/service"
	optionService "ecole_backend/internals/features/academics/options/service"
	yearService "ecole_backend/internals/features/academics/school_years/service"
	notificationService "ecole_backend/internals/features/communication/notifications/service"
	dashboardService "ecole_backend/internals/features/dashboard/service"
	feeService "ecole_backend/internals/features/finance/fees/service"
	paymentService "ecole_backend/internals/features/finance/payments/service"
	liveService "ecole_backend/internals/features/live/service"
	parentService "ecole_backend/internals/features/people/parents/service"
	studentService "ecole_backend/internals/features/people/students/service"
	portalService "ecole_backend/internals/features/portal/service"
	authService "ecole_backend/internals/features/users/auth/service"
	"ecole_backend/internals/helpers/dbtime"
	"ecole_backend/internals/helpers/media"
	"ecole_backend/internals/realtime"
	"ecole_backend/internals/revalidate"
)

// Services holds one instance of every feature service. They are built
// once at boot and shared by all routes.
type Services struct {
	SchoolYears   *yearService.SchoolYearService
	Options       *optionService.OptionService
	Classes       *classService.ClassService
	Parents       *parentService.ParentService
	Students      *studentService.StudentService
	Fees          *feeService.FeeService
	Enrollments   *enrollmentService.EnrollmentService
	Payments      *paymentService.PaymentService
	Notifications *notificationService.NotificationService

	Dashboard *dashboardService.DashboardService
	Portal    *portalService.PortalService
	Auth      *authService.AuthService
	Feeds     *liveService.Feeds
}

type Deps struct {
	DB       *gorm.DB
	Registry *revalidate.Registry
	// Photos may be nil when no media host is configured.
	Photos *media.Photos
	GoTrue *authService.GoTrue
	// Changes feeds the live lists; usually the realtime listener.
	Changes    realtime.Subscriber
	MaxLookups int
}

func NewServices(d Deps) *Services {
	s := &Services{
		SchoolYears:   yearService.NewSchoolYearService(d.DB, d.Registry),
		Options:       optionService.NewOptionService(d.DB, d.Registry),
		Classes:       classService.NewClassService(d.DB, d.Registry),
		Parents:       parentService.NewParentService(d.DB, d.Registry),
		Students:      studentService.NewStudentService(d.DB, d.Registry, d.Photos),
		Fees:          feeService.NewFeeService(d.DB, d.Registry),
		Enrollments:   enrollmentService.NewEnrollmentService(d.DB, d.Registry),
		Payments:      paymentService.NewPaymentService(d.DB, d.Registry),
		Notifications: notificationService.NewNotificationService(d.DB, d.Registry),
	}

	s.Dashboard = &dashboardService.DashboardService{
		Students:    s.Students,
		Classes:     s.Classes,
		Payments:    s.Payments,
		Enrollments: s.Enrollments,
		Now:         dbtime.NowInSchool,
	}
	s.Portal = &portalService.PortalService{
		Parents:       s.Parents,
		Children:      s.Students,
		Payments:      s.Payments,
		Notifications: s.Notifications,
	}
	s.Auth = &authService.AuthService{Parents: s.Parents, Auth: d.GoTrue}

	s.Feeds = liveService.NewFeeds(d.Changes, d.MaxLookups).RegisterAll(liveService.Sources{
		SchoolYears:   s.SchoolYears,
		Options:       s.Options,
		Classes:       s.Classes,
		Parents:       s.Parents,
		Students:      s.Students,
		Fees:          s.Fees,
		Enrollments:   s.Enrollments,
		Payments:      s.Payments,
		Notifications: s.Notifications,
	})
	return s
}
