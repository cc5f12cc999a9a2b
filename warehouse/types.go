// Package warehouse builds on the store types from another package: its
// records embed store.Entity and a generic envelope.
package warehouse

import (
	"time"

	"yamlmeta/store"
)

// Address represents a physical shipping address.
//
//yaml:object snake_case
type Address struct {
	store.Entity
	Street     string
	City       string
	PostalCode string
	Country    string `yaml:"country_code"`
	IsDefault  bool
}

// Envelope wraps a payload with tracking data.
type Envelope[T any] struct {
	Payload   T
	TrackedAt time.Time
}

// Shipment is the envelope of an order. The generic base is instantiated
// with a type from another package.
//
//yaml:object snake_case
//yaml:union parcel Parcel
//yaml:union pallet Pallet
//yaml:union extra
type Shipment struct {
	Envelope[store.Order]
	Carrier string
	ID      string `yaml:"tracking_id,order=-1"`
}

// Parcel is a shipment small enough for a courier.
//
//yaml:object
type Parcel struct {
	Shipment
	WeightGrams int
}

// Pallet is a shipment moved by freight.
//
//yaml:object
type Pallet struct {
	Shipment
	Slots int
}

// NewParcel creates a parcel for an order.
func NewParcel(order store.Order, carrier string) Parcel {
	return Parcel{Shipment: Shipment{Envelope: Envelope[store.Order]{Payload: order}, Carrier: carrier}}
}

// Transport prices a shipment. Implementations are written with a kind tag.
//
//yaml:object snake_case
//yaml:union courier Courier
//yaml:union freight Freight
type Transport interface {
	Quote(weightGrams int) int64
	Name() string
}

// Courier delivers parcels door to door.
//
//yaml:object
type Courier struct {
	Company string
}

// Quote implements Transport.
func (c Courier) Quote(weightGrams int) int64 { return int64(weightGrams) * 2 }

// Name implements Transport.
func (c Courier) Name() string { return c.Company }

// Freight moves pallets between depots.
//
//yaml:object
type Freight struct {
	Depot string
}

// Quote implements Transport.
func (f Freight) Quote(weightGrams int) int64 { return int64(weightGrams) / 10 }

// Name implements Transport.
func (f Freight) Name() string { return f.Depot }

// Grams is a weight. Only struct and interface types are extracted.
//
//yaml:object
type Grams int

// Labelled carries a read-write label.
type Labelled struct {
	label string
}

// Label returns the label.
func (l *Labelled) Label() string { return l.label }

// SetLabel sets the label.
func (l *Labelled) SetLabel(label string) { l.label = label }

// Crate replaces the label getter but keeps the promoted setter.
//
//yaml:object
type Crate struct {
	Labelled
	Slots int
}

// Label always reports the crate kind.
func (c *Crate) Label() string { return "crate" }
