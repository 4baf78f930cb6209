package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one entry in a user's cart. The price fields are a snapshot of
// the product at add time; later product edits do not touch existing lines.
type CartLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	MRP       float64            `bson:"mrp" json:"mrp"`
	Discount  float64            `bson:"discount" json:"discount"`
	MainImage string             `bson:"main_image" json:"main_image"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size" json:"size"`
	Color     string             `bson:"color" json:"color"`
	Brand     string             `bson:"brand" json:"brand"`
	Category  string             `bson:"category" json:"category"`
}

// NewCartLine snapshots a product into a cart line.
func NewCartLine(p Product, quantity int, size, color string) CartLine {
	return CartLine{
		ID:        primitive.NewObjectID(),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		MRP:       p.MRP,
		Discount:  p.Discount,
		MainImage: p.MainImage,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		Brand:     p.Brand,
		Category:  p.Category,
	}
}

// CartLineMatch filters for a user whose cart already holds a line for the
// same (product, size, color) variant. Lines are merged per variant; the same
// product in another size or color stays a separate line.
func CartLineMatch(userID primitive.ObjectID, line CartLine) bson.M {
	return bson.M{
		"_id": userID,
		"cart": bson.M{"$elemMatch": bson.M{
			"product_id": line.ProductID,
			"size":       line.Size,
			"color":      line.Color,
		}},
	}
}

// CartIncrement bumps the quantity of the line matched by CartLineMatch.
func CartIncrement(quantity int) bson.M {
	return bson.M{"$inc": bson.M{"cart.$.quantity": quantity}}
}

// CartAppend pushes a new line onto the cart.
func CartAppend(line CartLine) bson.M {
	return bson.M{"$push": bson.M{"cart": line}}
}

// CartRemove pulls the line with the given id out of the cart. Pulling a line
// that is not there matches the user but changes nothing.
func CartRemove(lineID primitive.ObjectID) bson.M {
	return bson.M{"$pull": bson.M{"cart": bson.M{"_id": lineID}}}
}

// CartTotals returns the cart subtotal and total item count.
func CartTotals(cart []CartLine) (subtotal float64, items int) {
	for _, line := range cart {
		subtotal += line.Price * float64(line.Quantity)
		items += line.Quantity
	}
	return subtotal, items
}
