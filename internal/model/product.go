package model

// Product represents an item in the store catalogue.
// Price is kept as the text the client submitted.
type Product struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Size     string `json:"size"`
	Barcode  string `json:"barcode"`
	Price    string `json:"price"`
	Photo    string `json:"photo"`
}

// ProductFields carries the fields of a create or update request, sent as a
// form or as JSON. A nil field was not present in the request.
type ProductFields struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Size     *string `json:"size"`
	Barcode  *string `json:"barcode"`
	Price    *string `json:"price"`
}

// Apply copies every present field onto p.
func (f ProductFields) Apply(p *Product) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Category != nil {
		p.Category = *f.Category
	}
	if f.Size != nil {
		p.Size = *f.Size
	}
	if f.Barcode != nil {
		p.Barcode = *f.Barcode
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
}

// ProductUpdate is the set of columns an update writes.
// A nil Photo leaves the stored photo untouched.
type ProductUpdate struct {
	ProductFields
	Photo *string
}
