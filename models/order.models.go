package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLine is a frozen copy of a cart line inside a completed order.
type OrderLine struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	MRP       float64            `bson:"mrp" json:"mrp"`
	Discount  float64            `bson:"discount" json:"discount"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
	MainImage string             `bson:"main_image" json:"main_image"`
	Brand     string             `bson:"brand" json:"brand"`
	Category  string             `bson:"category" json:"category"`
}

// OrderUserDetails is the purchaser identity/address copy stored on the order.
type OrderUserDetails struct {
	Email   string  `bson:"email" json:"email"`
	Phone   string  `bson:"phone" json:"phone"`
	Address Address `bson:"address" json:"address"`
}

// Order is an immutable snapshot of a completed purchase. UPITransactionID is
// a user-supplied claim; no payment verification happens anywhere.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserDetails      OrderUserDetails   `bson:"user_details" json:"user_details"`
	Products         []OrderLine        `bson:"products" json:"products"`
	TotalAmount      float64            `bson:"total_amount" json:"total_amount"`
	UPITransactionID string             `bson:"upi_transaction_id" json:"upi_transaction_id"`
	OrderDate        time.Time          `bson:"order_date" json:"order_date"`
	Status           string             `bson:"status" json:"status"` // always "Pending"; no transition path exists
}

// OrderLinesFromCart freezes the cart into order lines and returns the order
// total, which is Σ price×quantity over the lines at this moment.
func OrderLinesFromCart(cart []CartLine) ([]OrderLine, float64) {
	lines := make([]OrderLine, 0, len(cart))
	total := 0.0
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
		lines = append(lines, OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			MRP:       item.MRP,
			Discount:  item.Discount,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			MainImage: item.MainImage,
			Brand:     item.Brand,
			Category:  item.Category,
		})
	}
	return lines, total
}

// NewOrder materializes the order snapshot for a user's current cart.
func NewOrder(user User, upiTransactionID string) Order {
	lines, total := OrderLinesFromCart(user.Cart)
	return Order{
		UserID: user.ID,
		UserDetails: OrderUserDetails{
			Email:   user.Email,
			Phone:   user.Phone,
			Address: user.Address,
		},
		Products:         lines,
		TotalAmount:      total,
		UPITransactionID: upiTransactionID,
		OrderDate:        time.Now(),
		Status:           "Pending",
	}
}
