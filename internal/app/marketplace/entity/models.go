package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products. Categories have an independent lifecycle and
// are created implicitly when a product is created.
type Category struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
}

// Product references its category by id. The reference is stored raw;
// referential integrity is not enforced at write time.
type Product struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Price      float64            `json:"price" bson:"price"`
	Stock      int                `json:"stock" bson:"stock"`
	CategoryID primitive.ObjectID `json:"category_id" bson:"category_id"`
}

// User is the caller identity for the role-gated product delete.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Email    string             `json:"email" bson:"email"`
	IsAdmin  bool               `json:"is_admin" bson:"is_admin"`
}

// Review references a product and an author by id. Both references may
// dangle; reviews are only removed as a side effect of product deletion.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Comment   string             `json:"comment,omitempty" bson:"comment,omitempty"`
	Rating    int                `json:"rating" bson:"rating"`
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	AuthorID  primitive.ObjectID `json:"author_id" bson:"author_id"`
}

// ProductWithCategory is a product with its category reference resolved.
type ProductWithCategory struct {
	Product  `bson:",inline"`
	Category Category `json:"category" bson:"category"`
}

// ResolvedReview is a review with the author resolved to its username and
// the product resolved to its name.
type ResolvedReview struct {
	ID      primitive.ObjectID `json:"id"`
	Comment string             `json:"comment,omitempty"`
	Rating  int                `json:"rating"`
	Product ResolvedProduct    `json:"product"`
	Author  ResolvedAuthor     `json:"author"`
}

type ResolvedProduct struct {
	Name string `json:"name"`
}

type ResolvedAuthor struct {
	Username string `json:"username"`
}

// ProductEvent is published to Kafka on product create/delete.
type ProductEvent struct {
	EventType  string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_DELETED
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name,omitempty"`
	Price      float64   `json:"price,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ReviewEvent is published to Kafka on review create.
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"product_id"`
	AuthorID  string    `json:"author_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
