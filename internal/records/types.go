package records

import "time"

// Domain identifies one record collection.
type Domain string

const (
	DomainOrder    Domain = "order"
	DomainReturn   Domain = "return"
	DomainExchange Domain = "exchange"
	DomainUser     Domain = "user"
	DomainVendor   Domain = "vendor"
)

// ViewableDomains are the domains browsable in the record view. Vendors only
// back the reassign action.
var ViewableDomains = []Domain{DomainOrder, DomainReturn, DomainExchange, DomainUser}

func (d Domain) Valid() bool {
	switch d {
	case DomainOrder, DomainReturn, DomainExchange, DomainUser, DomainVendor:
		return true
	}
	return false
}

// Patch is a partial record update. Fields a record type does not carry are
// ignored by its Apply.
type Patch struct {
	Status   *string
	VendorID *string
	Note     *string
}

// Record is one entity in a domain collection. Records are immutable values;
// Apply returns an updated copy, mutation happens only through store writes.
type Record interface {
	RecordID() string
	RecordStatus() string
	RecordCreatedAt() time.Time

	// Field resolves a named attribute for filtering and sorting. The second
	// return is false for attributes the record type does not carry.
	Field(name string) (any, bool)

	// SearchText returns the values free-text search spans for this domain.
	SearchText() []string

	Apply(p Patch) Record
}

// Address is a postal address attached to a user record.
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type Order struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	VendorID      string    `json:"vendor_id"`
	Prepaid       bool      `json:"prepaid"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (o Order) RecordID() string           { return o.ID }
func (o Order) RecordStatus() string       { return o.Status }
func (o Order) RecordCreatedAt() time.Time { return o.CreatedAt }

func (o Order) Field(name string) (any, bool) {
	switch name {
	case "id":
		return o.ID, true
	case "customer_id":
		return o.CustomerID, true
	case "customer_name":
		return o.CustomerName, true
	case "customer_email":
		return o.CustomerEmail, true
	case "status":
		return o.Status, true
	case "amount":
		return o.Amount, true
	case "payment_method":
		return o.PaymentMethod, true
	case "vendor_id":
		return o.VendorID, true
	case "prepaid":
		return o.Prepaid, true
	case "created_at":
		return o.CreatedAt, true
	}
	return nil, false
}

func (o Order) SearchText() []string {
	return []string{o.ID, o.CustomerName, o.CustomerEmail}
}

func (o Order) Apply(p Patch) Record {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.VendorID != nil {
		o.VendorID = *p.VendorID
	}
	if p.Note != nil {
		o.Note = *p.Note
	}
	o.UpdatedAt = time.Now().UTC()
	return o
}

type Return struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	RefundAmount  float64   `json:"refund_amount"`
	VendorID      string    `json:"vendor_id"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r Return) RecordID() string           { return r.ID }
func (r Return) RecordStatus() string       { return r.Status }
func (r Return) RecordCreatedAt() time.Time { return r.CreatedAt }

func (r Return) Field(name string) (any, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "order_id":
		return r.OrderID, true
	case "customer_name":
		return r.CustomerName, true
	case "customer_email":
		return r.CustomerEmail, true
	case "reason":
		return r.Reason, true
	case "status":
		return r.Status, true
	case "refund_amount":
		return r.RefundAmount, true
	case "vendor_id":
		return r.VendorID, true
	case "created_at":
		return r.CreatedAt, true
	}
	return nil, false
}

func (r Return) SearchText() []string {
	return []string{r.ID, r.OrderID, r.CustomerName}
}

func (r Return) Apply(p Patch) Record {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.VendorID != nil {
		r.VendorID = *p.VendorID
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
	return r
}

type Exchange struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"order_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	OriginalItem    string    `json:"original_item"`
	ReplacementItem string    `json:"replacement_item"`
	Status          string    `json:"status"`
	VendorID        string    `json:"vendor_id"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (e Exchange) RecordID() string           { return e.ID }
func (e Exchange) RecordStatus() string       { return e.Status }
func (e Exchange) RecordCreatedAt() time.Time { return e.CreatedAt }

func (e Exchange) Field(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "order_id":
		return e.OrderID, true
	case "customer_name":
		return e.CustomerName, true
	case "customer_email":
		return e.CustomerEmail, true
	case "original_item":
		return e.OriginalItem, true
	case "replacement_item":
		return e.ReplacementItem, true
	case "status":
		return e.Status, true
	case "vendor_id":
		return e.VendorID, true
	case "created_at":
		return e.CreatedAt, true
	}
	return nil, false
}

func (e Exchange) SearchText() []string {
	return []string{e.ID, e.OrderID, e.CustomerName}
}

func (e Exchange) Apply(p Patch) Record {
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.VendorID != nil {
		e.VendorID = *p.VendorID
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	return e
}

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     Address   `json:"address"`
	DateOfBirth string    `json:"date_of_birth"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u User) RecordID() string           { return u.ID }
func (u User) RecordStatus() string       { return u.Status }
func (u User) RecordCreatedAt() time.Time { return u.CreatedAt }

func (u User) Field(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "phone":
		return u.Phone, true
	case "role":
		return u.Role, true
	case "status":
		return u.Status, true
	case "created_at":
		return u.CreatedAt, true
	}
	return nil, false
}

func (u User) SearchText() []string {
	return []string{u.ID, u.Name, u.Email}
}

func (u User) Apply(p Patch) Record {
	if p.Status != nil {
		u.Status = *p.Status
	}
	return u
}

type Vendor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (v Vendor) RecordID() string           { return v.ID }
func (v Vendor) RecordStatus() string       { return v.Status }
func (v Vendor) RecordCreatedAt() time.Time { return v.CreatedAt }

func (v Vendor) Field(name string) (any, bool) {
	switch name {
	case "id":
		return v.ID, true
	case "name":
		return v.Name, true
	case "email":
		return v.Email, true
	case "status":
		return v.Status, true
	case "created_at":
		return v.CreatedAt, true
	}
	return nil, false
}

func (v Vendor) SearchText() []string {
	return []string{v.ID, v.Name}
}

func (v Vendor) Apply(p Patch) Record {
	if p.Status != nil {
		v.Status = *p.Status
	}
	return v
}
