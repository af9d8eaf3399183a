package models

// Placeholder rendered in the results table for missing attribute values.
const Placeholder = "N/A"

type ExtractionResult struct {
	ProductTitle string `json:"product_title"`
	EANUPC       string `json:"ean_upc"`
	Color        string `json:"color"`
	Material     string `json:"material"`
	Battery      string `json:"battery"`
	Power        string `json:"power"`
	Dimensions   string `json:"dimensions"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url_1"`
}

// Attribute is one labelled value of an extraction result.
type Attribute struct {
	Label string
	Value string
}

// DisplayAttributes returns the attributes shown in the results table, in
// display order. Values are returned as-is; empty means missing.
func (r *ExtractionResult) DisplayAttributes() []Attribute {
	return []Attribute{
		{Label: "Product Title", Value: r.ProductTitle},
		{Label: "EAN/UPC Code", Value: r.EANUPC},
		{Label: "Color", Value: r.Color},
		{Label: "Material", Value: r.Material},
		{Label: "Battery", Value: r.Battery},
		{Label: "Power", Value: r.Power},
		{Label: "Dimensions", Value: r.Dimensions},
		{Label: "Description", Value: r.Description},
	}
}

// ExportAttributes returns the display attributes followed by the image URL.
func (r *ExtractionResult) ExportAttributes() []Attribute {
	return append(r.DisplayAttributes(), Attribute{Label: "Image URL", Value: r.ImageURL})
}

// ErrorResponse is the failure body returned by the extraction backend.
type ErrorResponse struct {
	Error string `json:"error"`
}
