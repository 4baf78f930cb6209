package controllers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-storefront/models"
	"go-storefront/views"
)

const maxUploadMemory = 10 << 20 // 10MB

// AdminController handles the dashboard and the users/orders/products views
type AdminController struct {
	UserCollection    *mongo.Collection
	OrderCollection   *mongo.Collection
	ProductCollection *mongo.Collection
	UploadDir         string
}

// NewAdminController creates a new AdminController
func NewAdminController(client *mongo.Client, uploadDir string) *AdminController {
	db := client.Database("ecommerce")
	return &AdminController{
		UserCollection:    db.Collection("users"),
		OrderCollection:   db.Collection("orders"),
		ProductCollection: db.Collection("products"),
		UploadDir:         uploadDir,
	}
}

// Dashboard recomputes the aggregates on every view; there is no caching.
func (ac *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page := views.AdminDashboardPage{}
	var err error

	if page.TotalUsers, err = ac.UserCollection.CountDocuments(ctx, bson.M{}); err == nil {
		if page.TotalOrders, err = ac.OrderCollection.CountDocuments(ctx, bson.M{}); err == nil {
			page.TotalProducts, err = ac.ProductCollection.CountDocuments(ctx, bson.M{})
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("dashboard: counts failed")
		views.RenderError(w, http.StatusInternalServerError, "Dashboard unavailable", "Could not load the dashboard. Please try again.")
		return
	}

	// Revenue is the sum of all order totals.
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}}},
	}
	cursor, err := ac.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Error().Err(err).Msg("dashboard: revenue aggregation failed")
		views.RenderError(w, http.StatusInternalServerError, "Dashboard unavailable", "Could not load the dashboard. Please try again.")
		return
	}
	var revenue []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &revenue); err != nil {
		log.Error().Err(err).Msg("dashboard: revenue decode failed")
		views.RenderError(w, http.StatusInternalServerError, "Dashboard unavailable", "Could not load the dashboard. Please try again.")
		return
	}
	if len(revenue) > 0 {
		page.TotalRevenue = revenue[0].Total
	}

	orderOpts := options.Find().SetSort(bson.M{"order_date": -1}).SetLimit(5)
	orderCursor, err := ac.OrderCollection.Find(ctx, bson.M{}, orderOpts)
	if err == nil {
		err = orderCursor.All(ctx, &page.RecentOrders)
	}
	if err != nil {
		log.Error().Err(err).Msg("dashboard: recent orders failed")
		views.RenderError(w, http.StatusInternalServerError, "Dashboard unavailable", "Could not load the dashboard. Please try again.")
		return
	}

	userOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(5)
	userCursor, err := ac.UserCollection.Find(ctx, bson.M{}, userOpts)
	if err == nil {
		err = userCursor.All(ctx, &page.RecentUsers)
	}
	if err != nil {
		log.Error().Err(err).Msg("dashboard: recent users failed")
		views.RenderError(w, http.StatusInternalServerError, "Dashboard unavailable", "Could not load the dashboard. Please try again.")
		return
	}

	views.Render(w, http.StatusOK, "admin_dashboard", page)
}

// Users lists all users. All rows are fetched; there is no pagination.
func (ac *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := ac.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Error().Err(err).Msg("admin: list users failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load users. Please try again.")
		return
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		log.Error().Err(err).Msg("admin: decode users failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load users. Please try again.")
		return
	}

	views.Render(w, http.StatusOK, "admin_users", views.AdminUsersPage{Users: users})
}

// UserDetails shows one user with their cart and order history.
func (ac *AdminController) UserDetails(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		views.RenderError(w, http.StatusBadRequest, "Invalid request", "That user link is not valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := ac.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		views.RenderError(w, http.StatusNotFound, "User not found", "No user exists with that id.")
		return
	}

	cursor, err := ac.OrderCollection.Find(ctx, bson.M{"user_id": id}, options.Find().SetSort(bson.M{"order_date": -1}))
	if err != nil {
		log.Error().Err(err).Str("user", id.Hex()).Msg("admin: user orders failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load the user's orders.")
		return
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Error().Err(err).Str("user", id.Hex()).Msg("admin: decode user orders failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load the user's orders.")
		return
	}

	views.Render(w, http.StatusOK, "admin_userdetail", views.AdminUserDetailPage{User: user, Orders: orders})
}

// Orders lists all orders, newest first.
func (ac *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := ac.OrderCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order_date": -1}))
	if err != nil {
		log.Error().Err(err).Msg("admin: list orders failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load orders. Please try again.")
		return
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Error().Err(err).Msg("admin: decode orders failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load orders. Please try again.")
		return
	}

	views.Render(w, http.StatusOK, "admin_orders", views.AdminOrdersPage{Orders: orders})
}

// Products lists the full catalog with stock and low-stock flags.
func (ac *AdminController) Products(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := ac.ProductCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Error().Err(err).Msg("admin: list products failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load products. Please try again.")
		return
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		log.Error().Err(err).Msg("admin: decode products failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "Could not load products. Please try again.")
		return
	}

	views.Render(w, http.StatusOK, "admin_products", views.AdminProductsPage{Products: products})
}

// AddProductForm renders the empty product form.
func (ac *AdminController) AddProductForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, "admin_product_form", views.ProductFormPage{
		Product: models.Product{Status: "Active"},
	})
}

// saveUpload stores one uploaded file under the upload directory with a
// random name, keeping only the original extension.
func (ac *AdminController) saveUpload(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(ac.UploadDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}

// splitList turns a comma-separated form field into a trimmed slice.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// productFromForm reads the shared add/edit form fields into p.
func productFromForm(r *http.Request, p *models.Product) string {
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		return "Price must be a non-negative number."
	}
	mrp, err := strconv.ParseFloat(r.FormValue("mrp"), 64)
	if err != nil || mrp < 0 {
		return "MRP must be a non-negative number."
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		return "Stock must be a non-negative whole number."
	}

	p.Name = strings.TrimSpace(r.FormValue("name"))
	p.Brand = strings.TrimSpace(r.FormValue("brand"))
	p.Category = strings.TrimSpace(r.FormValue("category"))
	if p.Name == "" || p.Brand == "" || p.Category == "" {
		return "Name, brand and category are required."
	}

	p.Price = price
	p.MRP = mrp
	p.Stock = stock
	p.Discount, _ = strconv.ParseFloat(r.FormValue("discount"), 64)
	p.LowStockAlert, _ = strconv.Atoi(r.FormValue("lowStockAlert"))
	p.DeliveryCharge, _ = strconv.ParseFloat(r.FormValue("deliveryCharge"), 64)
	p.FreeDelivery = r.FormValue("freeDelivery") == "on"
	p.Sizes = splitList(r.FormValue("sizes"))
	p.Colors = splitList(r.FormValue("colors"))
	p.Tags = splitList(r.FormValue("tags"))
	p.ShortDescription = strings.TrimSpace(r.FormValue("shortDescription"))
	p.FullDescription = strings.TrimSpace(r.FormValue("fullDescription"))
	p.Status = r.FormValue("status")
	if p.Status == "" {
		p.Status = "Active"
	}
	return ""
}

// AddProduct creates a product from the multipart form.
func (ac *AdminController) AddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		views.RenderError(w, http.StatusBadRequest, "Could not add product", "Invalid form submission.")
		return
	}

	var product models.Product
	if errMsg := productFromForm(r, &product); errMsg != "" {
		views.Render(w, http.StatusBadRequest, "admin_product_form", views.ProductFormPage{Product: product, Error: errMsg})
		return
	}

	mainImages := r.MultipartForm.File["mainImage"]
	if len(mainImages) == 0 {
		views.Render(w, http.StatusBadRequest, "admin_product_form", views.ProductFormPage{Product: product, Error: "A main image is required."})
		return
	}
	mainImage, err := ac.saveUpload(mainImages[0])
	if err != nil {
		log.Error().Err(err).Msg("admin: main image save failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not add product", "Image upload failed. Please try again.")
		return
	}
	product.MainImage = mainImage

	product.AdditionalImages = []string{}
	for i, header := range r.MultipartForm.File["additionalImages"] {
		if i == 5 {
			break
		}
		name, err := ac.saveUpload(header)
		if err != nil {
			log.Error().Err(err).Msg("admin: additional image save failed")
			views.RenderError(w, http.StatusInternalServerError, "Could not add product", "Image upload failed. Please try again.")
			return
		}
		product.AdditionalImages = append(product.AdditionalImages, name)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := ac.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Error().Err(err).Msg("admin: product insert failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not add product", "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// EditProductForm renders the form pre-filled with the product.
func (ac *AdminController) EditProductForm(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		views.RenderError(w, http.StatusBadRequest, "Invalid request", "That product link is not valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := ac.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		views.RenderError(w, http.StatusNotFound, "Product not found", "No product exists with that id.")
		return
	}

	views.Render(w, http.StatusOK, "admin_product_form", views.ProductFormPage{Product: product, Editing: true})
}

// UpdateProduct applies the form to an existing product. New images replace
// the main image and append to the additional images; cart and order line
// snapshots are untouched by design.
func (ac *AdminController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		views.RenderError(w, http.StatusBadRequest, "Invalid request", "That product link is not valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	var product models.Product
	if err := ac.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		views.RenderError(w, http.StatusNotFound, "Product not found", "No product exists with that id.")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		views.RenderError(w, http.StatusBadRequest, "Could not update product", "Invalid form submission.")
		return
	}
	if errMsg := productFromForm(r, &product); errMsg != "" {
		views.Render(w, http.StatusBadRequest, "admin_product_form", views.ProductFormPage{Product: product, Editing: true, Error: errMsg})
		return
	}

	if headers := r.MultipartForm.File["mainImage"]; len(headers) > 0 {
		name, err := ac.saveUpload(headers[0])
		if err != nil {
			log.Error().Err(err).Msg("admin: main image save failed")
			views.RenderError(w, http.StatusInternalServerError, "Could not update product", "Image upload failed. Please try again.")
			return
		}
		product.MainImage = name
	}
	for i, header := range r.MultipartForm.File["additionalImages"] {
		if i == 5 {
			break
		}
		name, err := ac.saveUpload(header)
		if err != nil {
			log.Error().Err(err).Msg("admin: additional image save failed")
			views.RenderError(w, http.StatusInternalServerError, "Could not update product", "Image upload failed. Please try again.")
			return
		}
		product.AdditionalImages = append(product.AdditionalImages, name)
	}

	if _, err := ac.ProductCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": product}); err != nil {
		log.Error().Err(err).Str("product", id.Hex()).Msg("admin: product update failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not update product", "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// DeleteProduct removes a product from the catalog. Existing cart lines and
// order snapshots keep their copied fields.
func (ac *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		views.RenderError(w, http.StatusBadRequest, "Invalid request", "That product link is not valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := ac.ProductCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Error().Err(err).Str("product", id.Hex()).Msg("admin: product delete failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not delete product", "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}
