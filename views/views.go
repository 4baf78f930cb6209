// Package views renders the server-side HTML pages. Templates are embedded
// in the binary and rendered with contextual auto-escaping, so user-supplied
// values and error details never reach the page as raw markup.
package views

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"go-storefront/models"
)

//go:embed templates/*.tmpl
var files embed.FS

var t = template.Must(template.New("").Funcs(template.FuncMap{
	"mul": func(price float64, qty int) float64 {
		return price * float64(qty)
	},
	"join": strings.Join,
}).ParseFS(files, "templates/*.tmpl"))

// Render writes the named page with the given status code.
func Render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// MessagePage is a generic outcome page (registration result, auth failures,
// persistence errors). Body is always fixed copy, never an error string.
type MessagePage struct {
	Title    string
	Heading  string
	Body     string
	LinkHref string
	LinkText string
	Success  bool
}

// RenderError renders the generic failure page. The underlying error detail
// belongs in the log, not here.
func RenderError(w http.ResponseWriter, status int, heading, body string) {
	Render(w, status, "message", MessagePage{
		Title:    "Error",
		Heading:  heading,
		Body:     body,
		LinkHref: "/home",
		LinkText: "Back to shopping",
	})
}

type LoginPage struct {
	Error string
}

type RegisterStep1Page struct {
	Error string
	Email string
	Phone string
}

// RegisterStep2Page carries the step-1 identity fields through hidden form
// inputs, as the original two-step flow does.
type RegisterStep2Page struct {
	Email    string
	Phone    string
	Password string
	Error    string
}

type HomePage struct {
	Query    string
	Products []models.Product
}

type ProductPage struct {
	Product models.Product
}

type CartPage struct {
	Cart     []models.CartLine
	Subtotal float64
	Items    int
}

type CheckoutPage struct {
	User     models.User
	Cart     []models.CartLine
	Subtotal float64
	Items    int
	Error    string
}

type OrderConfirmationPage struct {
	OrderID     string
	TotalAmount float64
}

type AdminDashboardPage struct {
	TotalUsers    int64
	TotalOrders   int64
	TotalProducts int64
	TotalRevenue  float64
	RecentOrders  []models.Order
	RecentUsers   []models.User
}

type AdminUsersPage struct {
	Users []models.User
}

type AdminUserDetailPage struct {
	User   models.User
	Orders []models.Order
}

type AdminOrdersPage struct {
	Orders []models.Order
}

type AdminProductsPage struct {
	Products []models.Product
}

// ProductFormPage serves both the add and edit product forms.
type ProductFormPage struct {
	Product models.Product
	Editing bool
	Error   string
}
