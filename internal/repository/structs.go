package repository

import (
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("not found")

type Order struct {
	ID            string    `db:"id"`
	CustomerID    string    `db:"customer_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerEmail string    `db:"customer_email"`
	Status        string    `db:"status"`
	Amount        float64   `db:"amount"`
	PaymentMethod string    `db:"payment_method"`
	VendorID      string    `db:"vendor_id"`
	Prepaid       bool      `db:"prepaid"`
	Note          string    `db:"note"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type Return struct {
	ID            string    `db:"id"`
	OrderID       string    `db:"order_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerEmail string    `db:"customer_email"`
	Reason        string    `db:"reason"`
	Status        string    `db:"status"`
	RefundAmount  float64   `db:"refund_amount"`
	VendorID      string    `db:"vendor_id"`
	Note          string    `db:"note"`
	CreatedAt     time.Time `db:"created_at"`
}

type Exchange struct {
	ID              string    `db:"id"`
	OrderID         string    `db:"order_id"`
	CustomerName    string    `db:"customer_name"`
	CustomerEmail   string    `db:"customer_email"`
	OriginalItem    string    `db:"original_item"`
	ReplacementItem string    `db:"replacement_item"`
	Status          string    `db:"status"`
	VendorID        string    `db:"vendor_id"`
	Note            string    `db:"note"`
	CreatedAt       time.Time `db:"created_at"`
}

type User struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	AddressStreet   string    `db:"address_street"`
	AddressCity     string    `db:"address_city"`
	AddressState    string    `db:"address_state"`
	AddressPincode  string    `db:"address_pincode"`
	AddressLandmark string    `db:"address_landmark"`
	DateOfBirth     string    `db:"date_of_birth"`
	Role            string    `db:"role"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
}

type Vendor struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// HistoryEntry records one status transition of a record.
type HistoryEntry struct {
	ID        int64     `db:"id"`
	Domain    string    `db:"domain"`
	RecordID  string    `db:"record_id"`
	Status    string    `db:"status"`
	ChangedAt time.Time `db:"changed_at"`
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}
