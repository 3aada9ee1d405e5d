package membership

import (
	"membership/cron"
	"membership/handlers"
	"membership/services"

	authServices "auth/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module bundles the registration and dues machinery. PlayerService doubles
// as the credential store for the auth module.
type Module struct {
	PlayerService     *services.PlayerService
	DuesService       *services.DuesService
	MembershipHandler *handlers.MembershipHandler
	DuesHandler       *handlers.DuesHandler
	Scheduler         *cron.Scheduler
}

func NewModule(db *gorm.DB) *Module {
	email := authServices.NewEmailService()
	playerService := services.NewPlayerService(db, email)
	duesService := services.NewDuesService(db)

	return &Module{
		PlayerService:     playerService,
		DuesService:       duesService,
		MembershipHandler: handlers.NewMembershipHandler(playerService, duesService),
		DuesHandler:       handlers.NewDuesHandler(duesService),
		Scheduler:         cron.NewScheduler(duesService),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine, requirePlayer, requireAdmin gin.HandlerFunc) {
	r.POST("/signup", m.MembershipHandler.Signup)

	admin := r.Group("/admin", requireAdmin)
	{
		admin.GET("/pending", m.MembershipHandler.Pending)
		admin.POST("/approve/:id", m.MembershipHandler.Approve)
		admin.POST("/reject/:id", m.MembershipHandler.Reject)
		admin.GET("/approved", m.MembershipHandler.Approved)
		admin.POST("/suspend/:id", m.MembershipHandler.Suspend)
		admin.POST("/activate/:id", m.MembershipHandler.Activate)

		admin.PUT("/dues/:id", m.DuesHandler.SetDues)
		admin.GET("/dues-by-quarter", m.DuesHandler.DuesByQuarter)
		admin.GET("/payment-evidence", m.DuesHandler.PendingEvidence)
		admin.POST("/approve-payment/:id", m.DuesHandler.ApprovePayment)
		admin.POST("/reject-payment/:id", m.DuesHandler.RejectPayment)
	}

	member := r.Group("/member", requirePlayer)
	{
		member.GET("/dues", m.DuesHandler.MyDues)
		member.POST("/payment-evidence", m.DuesHandler.SubmitEvidence)
		member.POST("/waiver", m.DuesHandler.ApplyWaiver)
	}
}

// StartScheduler begins the hourly waiver expiry job
func (m *Module) StartScheduler() error {
	return m.Scheduler.Start()
}

// StopScheduler gracefully stops the scheduler
func (m *Module) StopScheduler() {
	m.Scheduler.Stop()
}
