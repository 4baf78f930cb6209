package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-storefront/models"
	"go-storefront/utils"
	"go-storefront/views"
)

// orderStore is the persistence surface for completing an order.
type orderStore interface {
	InsertOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error)
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
	DeleteOrder(ctx context.Context, orderID primitive.ObjectID) error
}

type mongoOrderStore struct {
	orders *mongo.Collection
	users  *mongo.Collection
}

func (s mongoOrderStore) InsertOrder(ctx context.Context, order models.Order) (primitive.ObjectID, error) {
	result, err := s.orders.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (s mongoOrderStore) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"cart": []models.CartLine{}}})
	return err
}

func (s mongoOrderStore) DeleteOrder(ctx context.Context, orderID primitive.ObjectID) error {
	_, err := s.orders.DeleteOne(ctx, bson.M{"_id": orderID})
	return err
}

// placeOrder persists the order snapshot, then empties the cart. The two
// writes must land together: when the clear fails the inserted order is
// deleted again, so no state survives where the order exists but the cart
// does not. The compensating delete runs on its own context with a fresh
// deadline — the clear typically fails because the request context was
// cancelled or timed out, and that cancellation must not strand the order.
func placeOrder(ctx context.Context, store orderStore, user models.User, upiTransactionID string) (models.Order, error) {
	order := models.NewOrder(user, upiTransactionID)

	orderID, err := store.InsertOrder(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	order.ID = orderID

	if err := store.ClearCart(ctx, user.ID); err != nil {
		log.Error().Err(err).Str("order", orderID.Hex()).Msg("order: cart clear failed, removing order")
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if delErr := store.DeleteOrder(cleanupCtx, orderID); delErr != nil {
			log.Error().Err(delErr).Str("order", orderID.Hex()).Msg("order: compensating delete failed")
		}
		return models.Order{}, err
	}

	return order, nil
}

// OrderController handles checkout and order completion
type OrderController struct {
	UserCollection *mongo.Collection
	Store          orderStore
	EmailService   *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database("ecommerce")
	return &OrderController{
		UserCollection: db.Collection("users"),
		Store: mongoOrderStore{
			orders: db.Collection("orders"),
			users:  db.Collection("users"),
		},
		EmailService: emailService,
	}
}

// Checkout renders the checkout page with the cart summary and the UPI form.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := requestUser(ctx, oc.UserCollection, r)
	if err != nil {
		views.RenderError(w, http.StatusNotFound, "User not found", "Please log in again.")
		return
	}
	if len(user.Cart) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	subtotal, items := models.CartTotals(user.Cart)
	views.Render(w, http.StatusOK, "checkout", views.CheckoutPage{
		User:     user,
		Cart:     user.Cart,
		Subtotal: subtotal,
		Items:    items,
	})
}

// CompleteOrder snapshots the cart, address and the user-entered UPI
// transaction id into an order, then empties the cart. The transaction id is
// stored exactly as supplied; no payment verification happens.
func (oc *OrderController) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := requestUser(ctx, oc.UserCollection, r)
	if err != nil {
		views.RenderError(w, http.StatusNotFound, "User not found", "Please log in again.")
		return
	}
	if len(user.Cart) == 0 {
		views.RenderError(w, http.StatusBadRequest, "Cart is empty", "There is nothing to order.")
		return
	}

	if err := r.ParseForm(); err != nil {
		views.RenderError(w, http.StatusBadRequest, "Could not place order", "Invalid form submission.")
		return
	}
	upiID := r.FormValue("upiId")
	if !utils.ValidUPITransactionID(upiID) {
		subtotal, items := models.CartTotals(user.Cart)
		views.Render(w, http.StatusBadRequest, "checkout", views.CheckoutPage{
			User:     user,
			Cart:     user.Cart,
			Subtotal: subtotal,
			Items:    items,
			Error:    "Please enter the 12-digit UPI transaction ID.",
		})
		return
	}

	order, err := placeOrder(ctx, oc.Store, user, upiID)
	if err != nil {
		log.Error().Err(err).Str("user", user.ID.Hex()).Msg("order: completion failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not place order", "Something went wrong. Your cart is unchanged.")
		return
	}

	go func(email, orderID string, total float64) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, orderID, total); err != nil {
			log.Warn().Err(err).Str("order", orderID).Msg("order confirmation email failed")
		}
	}(user.Email, order.ID.Hex(), order.TotalAmount)

	views.Render(w, http.StatusOK, "order_confirmation", views.OrderConfirmationPage{
		OrderID:     order.ID.Hex(),
		TotalAmount: order.TotalAmount,
	})
}
