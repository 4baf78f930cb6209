package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-storefront/models"
	"go-storefront/views"
)

// ProductController handles the catalog pages and the search API
type ProductController struct {
	Collection *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client) *ProductController {
	collection := client.Database("ecommerce").Collection("products")
	return &ProductController{
		Collection: collection,
	}
}

// searchProducts runs the catalog filter and relevance re-sort for a query.
func (pc *ProductController) searchProducts(ctx context.Context, query string) ([]models.Product, error) {
	cursor, err := pc.Collection.Find(ctx, models.SearchFilter(query))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	models.SortByRelevance(products, query)
	return products, nil
}

// Home renders the catalog, optionally filtered by the search query param.
func (pc *ProductController) Home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	products, err := pc.searchProducts(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("home: product search failed")
		views.RenderError(w, http.StatusInternalServerError, "Something went wrong", "We could not load the catalog. Please try again.")
		return
	}

	views.Render(w, http.StatusOK, "home", views.HomePage{Query: query, Products: products})
}

// ViewProduct renders the product detail page.
func (pc *ProductController) ViewProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		views.RenderError(w, http.StatusBadRequest, "Invalid product", "That product link is not valid.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		views.RenderError(w, http.StatusNotFound, "Product not found", "The product you are looking for does not exist.")
		return
	}

	views.Render(w, http.StatusOK, "product", views.ProductPage{Product: product})
}

// APISearch is the JSON variant of the catalog search. An empty query
// returns an empty list.
func (pc *ProductController) APISearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	w.Header().Set("Content-Type", "application/json")

	if query == "" {
		json.NewEncoder(w).Encode([]models.Product{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	products, err := pc.searchProducts(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("api search failed")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "server error"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	json.NewEncoder(w).Encode(products)
}
