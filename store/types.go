// Package store holds annotated types used to exercise the extractor on a
// small order domain.
package store

import (
	"time"
)

// Entity carries the columns shared by every stored record.
type Entity struct {
	ID        int64     `yaml:"id,order=-1"`
	CreatedAt time.Time `yaml:"created_at"`
	revision  int
}

// Product represents an individual item available for sale.
// Prices are in cents.
//
//yaml:object snake_case
type Product struct {
	Entity
	SKU         string `yaml:"sku,order=0"`
	Name        string
	Description string
	PriceCents  int64
	Inventory   int    `yaml:"inventory_count"`
	cache       string `yaml:"-"`
}

// Customer represents the user placing orders.
//
//yaml:object
type Customer struct {
	Entity
	Email    string
	FullName string
	Address  *string
	IsActive bool
	password string
}

// Order represents a transaction made by a customer.
//
//yaml:object kebab-case
type Order struct {
	Entity
	CustomerID int64
	Status     OrderStatus
	Items      []OrderItem
	OrderedAt  time.Time
	notes      []string
}

// NewOrder creates a pending order for a customer.
func NewOrder(customerID int64) *Order {
	return &Order{CustomerID: customerID, Status: StatusPending}
}

// TotalCents is derived from the items.
//
//yaml:member order=100
func (o *Order) TotalCents() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}

	return total
}

// Note returns the i-th note.
func (o *Order) Note(i int) string { return o.notes[i] }

// SetNote replaces the i-th note.
func (o *Order) SetNote(i int, note string) { o.notes[i] = note }

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
//
//yaml:object UpperCamelCase
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
