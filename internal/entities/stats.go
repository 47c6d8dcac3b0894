package entities

// Overview holds collection counts for the stats endpoint.
type Overview struct {
	Users         int64   `json:"users"`
	Supplies      int64   `json:"supplies"`
	Volunteers    int64   `json:"volunteers"`
	Comments      int64   `json:"comments"`
	Testimonials  int64   `json:"testimonials"`
	TotalQuantity float64 `json:"totalQuantity"`
}

// CategoryTotal is one row of the supplies-by-category breakdown.
type CategoryTotal struct {
	Category      string  `bson:"_id" json:"category"`
	Count         int64   `bson:"count" json:"count"`
	TotalQuantity float64 `bson:"totalQuantity" json:"totalQuantity"`
}
