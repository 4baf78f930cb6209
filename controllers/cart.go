package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/utils"
	"go-storefront/views"
)

// CartController handles the cart and buy-now flows
type CartController struct {
	UserCollection    *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client) *CartController {
	return &CartController{
		UserCollection:    client.Database("ecommerce").Collection("users"),
		ProductCollection: client.Database("ecommerce").Collection("products"),
	}
}

var errNoIdentity = errors.New("no authenticated user on request")

// requestUser loads the user record for the request's session claims.
func requestUser(ctx context.Context, users *mongo.Collection, r *http.Request) (models.User, error) {
	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		return models.User{}, errNoIdentity
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	err = users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	return user, err
}

// cartLineFromForm validates the add-to-cart form and snapshots the product.
// There is deliberately no stock check: overselling is possible, matching the
// storefront's known behavior.
func (cc *CartController) cartLineFromForm(ctx context.Context, r *http.Request) (models.CartLine, int, string) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		return models.CartLine{}, http.StatusBadRequest, "That product link is not valid."
	}

	if err := r.ParseForm(); err != nil {
		return models.CartLine{}, http.StatusBadRequest, "Invalid form submission."
	}
	quantity, ok := utils.ParseQuantity(r.FormValue("quantity"))
	if !ok {
		return models.CartLine{}, http.StatusBadRequest, "Quantity must be a positive whole number."
	}

	var product models.Product
	if err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		return models.CartLine{}, http.StatusNotFound, "The product you are looking for does not exist."
	}

	return models.NewCartLine(product, quantity, r.FormValue("size"), r.FormValue("color")), 0, ""
}

// AddToCart merges the requested product/size/color into the user's cart.
// The merge is two filtered updates rather than a read-modify-write: an $inc
// against the matching variant line first, then a $push when no line matched,
// so concurrent adds never clobber each other's lines.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := requestUser(ctx, cc.UserCollection, r)
	if err != nil {
		views.RenderError(w, http.StatusNotFound, "User not found", "Please log in again.")
		return
	}

	line, status, errMsg := cc.cartLineFromForm(ctx, r)
	if errMsg != "" {
		views.RenderError(w, status, "Could not add to cart", errMsg)
		return
	}

	result, err := cc.UserCollection.UpdateOne(ctx, models.CartLineMatch(user.ID, line), models.CartIncrement(line.Quantity))
	if err == nil && result.MatchedCount == 0 {
		_, err = cc.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, models.CartAppend(line))
	}
	if err != nil {
		log.Error().Err(err).Str("user", user.ID.Hex()).Msg("cart: update failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not add to cart", "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Cart renders the cart page with totals.
func (cc *CartController) Cart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := requestUser(ctx, cc.UserCollection, r)
	if err != nil {
		views.RenderError(w, http.StatusNotFound, "User not found", "Please log in again.")
		return
	}

	subtotal, items := models.CartTotals(user.Cart)
	views.Render(w, http.StatusOK, "cart", views.CartPage{
		Cart:     user.Cart,
		Subtotal: subtotal,
		Items:    items,
	})
}

// RemoveFromCart deletes a cart line by its id. Removing a line that is
// already gone is a no-op.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	lineID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		views.RenderError(w, http.StatusBadRequest, "Invalid request", "That cart item link is not valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := requestUser(ctx, cc.UserCollection, r)
	if err != nil {
		views.RenderError(w, http.StatusNotFound, "User not found", "Please log in again.")
		return
	}

	_, err = cc.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, models.CartRemove(lineID))
	if err != nil {
		log.Error().Err(err).Str("user", user.ID.Hex()).Msg("cart: remove failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not update cart", "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// BuyNow is the express checkout path: it replaces the whole cart with a
// single line for the chosen product and goes straight to checkout. Whatever
// was in the cart before is discarded.
func (cc *CartController) BuyNow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := requestUser(ctx, cc.UserCollection, r)
	if err != nil {
		views.RenderError(w, http.StatusNotFound, "User not found", "Please log in again.")
		return
	}

	line, status, errMsg := cc.cartLineFromForm(ctx, r)
	if errMsg != "" {
		views.RenderError(w, status, "Could not start checkout", errMsg)
		return
	}

	cart := []models.CartLine{line}
	_, err = cc.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"cart": cart}})
	if err != nil {
		log.Error().Err(err).Str("user", user.ID.Hex()).Msg("buynow: cart replace failed")
		views.RenderError(w, http.StatusInternalServerError, "Could not start checkout", "Something went wrong. Please try again.")
		return
	}

	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}
