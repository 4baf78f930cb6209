package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a user's delivery address
type Address struct {
	State    string `bson:"state" json:"state"`
	District string `bson:"district" json:"district"`
	AreaName string `bson:"area_name" json:"area_name"`
	Pincode  string `bson:"pincode" json:"pincode"`
}

// User represents a user in the system
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"` // "user" or "admin"
	Address   Address            `bson:"address" json:"address"`
	Cart      []CartLine         `bson:"cart" json:"cart"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
