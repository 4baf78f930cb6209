package views

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func render(t *testing.T, name string, data interface{}) (*httptest.ResponseRecorder, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	Render(rec, 200, name, data)
	return rec, rec.Body.String()
}

func testProduct() models.Product {
	return models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Canvas Shoes",
		Brand:     "Walkers",
		Category:  "Footwear",
		Price:     499,
		MRP:       999,
		Discount:  50,
		Stock:     3,
		MainImage: "shoes.jpg",
		Sizes:     []string{"M", "L"},
		Colors:    []string{"Blue"},
	}
}

func TestRenderHome(t *testing.T) {
	_, body := render(t, "home", HomePage{
		Query:    "shoes",
		Products: []models.Product{testProduct()},
	})

	assert.Contains(t, body, "Canvas Shoes")
	assert.Contains(t, body, "₹499.00")
	assert.Contains(t, body, "/viewproduct/")
}

func TestRenderHomeEscapesQuery(t *testing.T) {
	_, body := render(t, "home", HomePage{Query: `<script>alert(1)</script>`})

	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderProduct(t *testing.T) {
	p := testProduct()
	_, body := render(t, "product", ProductPage{Product: p})

	assert.Contains(t, body, p.Name)
	assert.Contains(t, body, "/addtocart/"+p.ID.Hex())
	assert.Contains(t, body, "/buynow/"+p.ID.Hex())
}

func TestRenderCart(t *testing.T) {
	line := models.CartLine{
		ID:       primitive.NewObjectID(),
		Name:     "Canvas Shoes",
		Price:    499,
		Quantity: 2,
		Size:     "M",
	}
	_, body := render(t, "cart", CartPage{
		Cart:     []models.CartLine{line},
		Subtotal: 998,
		Items:    2,
	})

	assert.Contains(t, body, "Canvas Shoes")
	assert.Contains(t, body, "₹998.00")
	assert.Contains(t, body, "/removefromcart/"+line.ID.Hex())
}

func TestRenderCartEmpty(t *testing.T) {
	_, body := render(t, "cart", CartPage{})
	assert.Contains(t, body, "Your cart is empty")
}

func TestRenderCheckout(t *testing.T) {
	_, body := render(t, "checkout", CheckoutPage{
		User: models.User{
			Phone:   "9876543210",
			Address: models.Address{State: "Kerala", District: "Ernakulam", AreaName: "Kakkanad", Pincode: "682030"},
		},
		Cart:     []models.CartLine{{Name: "Canvas Shoes", Price: 499, Quantity: 2}},
		Subtotal: 998,
		Items:    2,
	})

	assert.Contains(t, body, "682030")
	assert.Contains(t, body, "upiId")
	assert.Contains(t, body, "/completeorder")
}

func TestRenderOrderConfirmation(t *testing.T) {
	_, body := render(t, "order_confirmation", OrderConfirmationPage{
		OrderID:     "6512bd43d9caa6e02c990b0a",
		TotalAmount: 998,
	})

	assert.Contains(t, body, "6512bd43d9caa6e02c990b0a")
	assert.Contains(t, body, "pending")
}

func TestRenderLoginAndRegister(t *testing.T) {
	_, body := render(t, "login", LoginPage{Error: "Invalid credentials."})
	assert.Contains(t, body, "Invalid credentials.")

	_, body = render(t, "register_step1", RegisterStep1Page{Email: "a@example.com"})
	assert.Contains(t, body, "a@example.com")

	_, body = render(t, "register_step2", RegisterStep2Page{Email: "a@example.com", Phone: "9876543210", Password: "secret"})
	assert.Contains(t, body, "areaName")
}

func TestRenderMessageEscapesBody(t *testing.T) {
	_, body := render(t, "message", MessagePage{
		Title:   "Error",
		Heading: "Something went wrong",
		Body:    `<img src=x onerror=alert(1)>`,
	})

	assert.NotContains(t, body, "<img src=x")
}

func TestRenderAdminPages(t *testing.T) {
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     "a@example.com",
		Phone:     "9876543210",
		Role:      "user",
		CreatedAt: time.Now(),
	}
	order := models.Order{
		ID:          primitive.NewObjectID(),
		UserDetails: models.OrderUserDetails{Email: "a@example.com", Phone: "9876543210"},
		TotalAmount: 998,
		Status:      "Pending",
		OrderDate:   time.Now(),
	}

	_, body := render(t, "admin_dashboard", AdminDashboardPage{
		TotalUsers:    2,
		TotalOrders:   1,
		TotalProducts: 3,
		TotalRevenue:  998,
		RecentOrders:  []models.Order{order},
		RecentUsers:   []models.User{user},
	})
	assert.Contains(t, body, "₹998.00")
	assert.Contains(t, body, "a@example.com")

	_, body = render(t, "admin_users", AdminUsersPage{Users: []models.User{user}})
	assert.Contains(t, body, "/admin/userdetails/"+user.ID.Hex())

	_, body = render(t, "admin_userdetail", AdminUserDetailPage{User: user, Orders: []models.Order{order}})
	assert.Contains(t, body, order.ID.Hex())

	_, body = render(t, "admin_orders", AdminOrdersPage{Orders: []models.Order{order}})
	assert.Contains(t, body, "Pending")
}

func TestRenderAdminProducts(t *testing.T) {
	p := testProduct()
	p.LowStockAlert = 5 // stock 3 <= alert 5

	_, body := render(t, "admin_products", AdminProductsPage{Products: []models.Product{p}})
	assert.Contains(t, body, "Low")
	assert.Contains(t, body, "/admin/editproduct/"+p.ID.Hex())
	assert.Contains(t, body, "/admin/deleteproduct/"+p.ID.Hex())
}

func TestRenderProductForm(t *testing.T) {
	_, body := render(t, "admin_product_form", ProductFormPage{Product: models.Product{Status: "Active"}})
	assert.Contains(t, body, "/admin/addproduct")
	assert.Contains(t, body, "Add Product")

	p := testProduct()
	_, body = render(t, "admin_product_form", ProductFormPage{Product: p, Editing: true})
	assert.Contains(t, body, "/admin/updateproduct/"+p.ID.Hex())
	assert.Contains(t, body, "M, L")
}
