package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog entry
type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string             `bson:"name" json:"name"`
	Category         string             `bson:"category" json:"category"`
	Brand            string             `bson:"brand" json:"brand"`
	SKU              string             `bson:"sku,omitempty" json:"sku,omitempty"`
	ProductCode      string             `bson:"product_code,omitempty" json:"product_code,omitempty"`
	Price            float64            `bson:"price" json:"price"`
	MRP              float64            `bson:"mrp" json:"mrp"`
	Discount         float64            `bson:"discount" json:"discount"`
	Stock            int                `bson:"stock" json:"stock"`
	LowStockAlert    int                `bson:"low_stock_alert" json:"low_stock_alert"`
	DeliveryCharge   float64            `bson:"delivery_charge" json:"delivery_charge"`
	FreeDelivery     bool               `bson:"free_delivery" json:"free_delivery"`
	Sizes            []string           `bson:"sizes" json:"sizes"`
	Colors           []string           `bson:"colors" json:"colors"`
	Variants         []string           `bson:"variants,omitempty" json:"variants,omitempty"`
	MainImage        string             `bson:"main_image" json:"main_image"`
	AdditionalImages []string           `bson:"additional_images" json:"additional_images"`
	ShortDescription string             `bson:"short_description" json:"short_description"`
	FullDescription  string             `bson:"full_description" json:"full_description"`
	KeyFeatures      []string           `bson:"key_features,omitempty" json:"key_features,omitempty"`
	Material         string             `bson:"material,omitempty" json:"material,omitempty"`
	Dimensions       string             `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	Weight           string             `bson:"weight,omitempty" json:"weight,omitempty"`
	Warranty         string             `bson:"warranty,omitempty" json:"warranty,omitempty"`
	Tags             []string           `bson:"tags" json:"tags"`
	Status           string             `bson:"status" json:"status"` // e.g. "Active", "Inactive"
	LaunchDate       *time.Time         `bson:"launch_date,omitempty" json:"launch_date,omitempty"`
	ReturnPolicy     string             `bson:"return_policy,omitempty" json:"return_policy,omitempty"`
	BankOffers       string             `bson:"bank_offers,omitempty" json:"bank_offers,omitempty"`
	SpecialOffer     string             `bson:"special_offer,omitempty" json:"special_offer,omitempty"`
}

// LowStock reports whether the product has fallen to its reorder threshold.
// Stock is never decremented by checkout; the flag only surfaces on the admin
// products view.
func (p Product) LowStock() bool {
	return p.LowStockAlert > 0 && p.Stock <= p.LowStockAlert
}
