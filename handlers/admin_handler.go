package handlers

import (
	"time"

	"github.com/asifrahman/collab_study/database"
	"github.com/asifrahman/collab_study/models"
	"github.com/gofiber/fiber/v2"
)

type DashboardAnalyticsResponse struct {
	TotalStudents      int64            `json:"total_students"`
	TotalTutors        int64            `json:"total_tutors"`
	PendingSessions    int64            `json:"pending_sessions"`
	ApprovedSessions   int64            `json:"approved_sessions"`
	RejectedSessions   int64            `json:"rejected_sessions"`
	TotalRevenue       float64          `json:"total_revenue"`
	BookingsLast30Days int64            `json:"bookings_last_30_days"`
	RecentBookings     []models.Booking `json:"recent_bookings"`
}

// GetDashboardAnalytics aggregates the admin dashboard numbers server-side.
func GetDashboardAnalytics(c *fiber.Ctx) error {
	var response DashboardAnalyticsResponse
	var totalRevenue float64

	database.DB.Model(&models.User{}).Where("role = ?", "user").Count(&response.TotalStudents)
	database.DB.Model(&models.User{}).Where("role = ?", "tutor").Count(&response.TotalTutors)

	database.DB.Model(&models.Session{}).Where("status = ?", "pending").Count(&response.PendingSessions)
	database.DB.Model(&models.Session{}).Where("status = ?", "approved").Count(&response.ApprovedSessions)
	database.DB.Model(&models.Session{}).Where("status = ?", "rejected").Count(&response.RejectedSessions)

	database.DB.Model(&models.Booking{}).
		Where("transaction_id IS NOT NULL").
		Select("COALESCE(SUM(registration_fee), 0)").
		Row().Scan(&totalRevenue)
	response.TotalRevenue = totalRevenue

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&models.Booking{}).Where("booked_at > ?", thirtyDaysAgo).Count(&response.BookingsLast30Days)

	database.DB.Order("booked_at desc").Limit(5).Find(&response.RecentBookings)

	return c.JSON(response)
}
