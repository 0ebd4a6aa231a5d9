package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-reserve/events"
	"github.com/yeremiapane/bistro-reserve/models"
	"github.com/yeremiapane/bistro-reserve/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats mengambil statistik ringkas untuk dashboard admin.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	var stats struct {
		TotalOrders   int64   `json:"total_orders"`
		TotalRevenue  float64 `json:"total_revenue"`
		TotalBookings int64   `json:"total_bookings"`
		ActiveUsers   int64   `json:"active_users"`
		TodayOrders   int64   `json:"today_orders"`
		TodayRevenue  float64 `json:"today_revenue"`
		TodayBookings int64   `json:"today_bookings"`
		PendingOrders int64   `json:"pending_orders"`
		BookingStats  struct {
			Confirmed int64 `json:"confirmed"`
			Cancelled int64 `json:"cancelled"`
			Completed int64 `json:"completed"`
			NoShow    int64 `json:"no_show"`
		} `json:"booking_stats"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&stats.ActiveUsers)

	ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&stats.TodayOrders)
	ac.DB.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ? AND status <> ?", today, tomorrow, models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.TodayRevenue)
	ac.DB.Model(&models.Booking{}).
		Where("booking_date >= ? AND booking_date < ?", today, tomorrow).
		Count(&stats.TodayBookings)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)

	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusConfirmed).Count(&stats.BookingStats.Confirmed)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCancelled).Count(&stats.BookingStats.Cancelled)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCompleted).Count(&stats.BookingStats.Completed)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusNoShow).Count(&stats.BookingStats.NoShow)

	events.Broadcast(events.Message{
		Event: events.EventDashboardUpdate,
		Data:  stats,
	})

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

type salesRow struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type bookingRow struct {
	Date     string `json:"date"`
	Bookings int64  `json:"bookings"`
}

type popularItemRow struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	TotalOrdered int64   `json:"total_ordered"`
	Revenue      float64 `json:"revenue"`
}

func (ac *AdminController) analyticsWindow(c *gin.Context) (time.Time, int) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	return time.Now().AddDate(0, 0, -days), days
}

func (ac *AdminController) salesPerDay(since time.Time) ([]salesRow, error) {
	var rows []salesRow
	err := ac.DB.Model(&models.Order{}).
		Select("DATE(created_at) as date, COALESCE(SUM(total_amount), 0) as revenue, COUNT(*) as orders").
		Where("created_at >= ? AND status <> ?", since, models.OrderStatusCancelled).
		Group("DATE(created_at)").
		Order("date asc").
		Scan(&rows).Error
	return rows, err
}

// GetAnalytics -> penjualan per hari, booking per hari, dan item terlaris
// untuk N hari terakhir.
func (ac *AdminController) GetAnalytics(c *gin.Context) {
	since, days := ac.analyticsWindow(c)

	sales, err := ac.salesPerDay(since)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var bookings []bookingRow
	if err := ac.DB.Model(&models.Booking{}).
		Select("DATE(booking_date) as date, COUNT(*) as bookings").
		Where("booking_date >= ? AND status <> ?", since, models.BookingStatusCancelled).
		Group("DATE(booking_date)").
		Order("date asc").
		Scan(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var popular []popularItemRow
	if err := ac.DB.Model(&models.OrderItem{}).
		Select("order_items.menu_item_id as id, menu_items.name as name, "+
			"SUM(order_items.quantity) as total_ordered, "+
			"COALESCE(SUM(order_items.price * order_items.quantity), 0) as revenue").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.status <> ?", since, models.OrderStatusCancelled).
		Group("order_items.menu_item_id, menu_items.name").
		Order("total_ordered desc").
		Limit(10).
		Scan(&popular).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Analytics data", gin.H{
		"days":          days,
		"sales_data":    sales,
		"booking_data":  bookings,
		"popular_items": popular,
	})
}

// GetAnalyticsChart -> render grafik revenue harian sebagai PNG.
func (ac *AdminController) GetAnalyticsChart(c *gin.Context) {
	since, _ := ac.analyticsWindow(c)

	sales, err := ac.salesPerDay(since)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(sales) < 2 {
		utils.RespondError(c, http.StatusNotFound, errors.New("not enough sales data to render chart"))
		return
	}

	xValues := make([]time.Time, 0, len(sales))
	yValues := make([]float64, 0, len(sales))
	for _, row := range sales {
		parsed, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, parsed)
		yValues = append(yValues, row.Revenue)
	}

	graph := chart.Chart{
		Title:  "Daily Revenue",
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "revenue",
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// ExportReportPDF -> ringkasan penjualan + booking sebagai PDF.
func (ac *AdminController) ExportReportPDF(c *gin.Context) {
	since, days := ac.analyticsWindow(c)

	sales, err := ac.salesPerDay(since)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var totalRevenue float64
	var totalOrders int64
	for _, row := range sales {
		totalRevenue += row.Revenue
		totalOrders += row.Orders
	}

	var totalBookings int64
	ac.DB.Model(&models.Booking{}).
		Where("booking_date >= ? AND status <> ?", since, models.BookingStatusCancelled).
		Count(&totalBookings)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Sales & Bookings Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Period: last %d days (since %s)", days, since.Format(dateLayout)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total revenue: %s", utils.FormatMoney(totalRevenue)))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total orders: %d", totalOrders))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total bookings: %d", totalBookings))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 8, "Orders", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 8, "Revenue", "1", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, row := range sales {
		pdf.CellFormat(60, 8, row.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 8, strconv.FormatInt(row.Orders, 10), "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 8, utils.FormatMoney(row.Revenue), "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=report.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
