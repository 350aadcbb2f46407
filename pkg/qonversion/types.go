package qonversion

// Identity maps an external identifier (email) to the Qonversion user id.
type Identity struct {
	UserID string `json:"user_id"`
}

// User is the Qonversion user record. Fields beyond the id are loosely
// specified by the API and treated as optional.
type User struct {
	ID          string `json:"id"`
	Created     *int64 `json:"created,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// Property is a single user property. Keys are free-form; the SDKs emit both
// prefixed ("_q_platform") and unprefixed ("platform") variants for the same
// logical field.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Subscription is the nested subscription state on a product.
type Subscription struct {
	RenewState string `json:"renew_state"`
}

// Product is the nested product on an entitlement.
type Product struct {
	ProductID    string        `json:"product_id"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// Entitlement is a grant of subscription access as returned by the API.
// Started and Expires are Unix timestamps; missing fields stay nil.
type Entitlement struct {
	ID      string   `json:"id"`
	Active  bool     `json:"active"`
	Source  string   `json:"source"`
	Started *int64   `json:"started,omitempty"`
	Expires *int64   `json:"expires,omitempty"`
	Product *Product `json:"product,omitempty"`
}

type propertiesResponse struct {
	Properties []Property `json:"properties"`
}

type entitlementsResponse struct {
	Data []Entitlement `json:"data"`
}
