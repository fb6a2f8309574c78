package models

// Product represents a product that can appear on orders.
type Product struct {
	ID      uint           `json:"id" gorm:"primaryKey"`
	Name    string         `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Price   float64        `json:"price" validate:"gte=0"`
	InStock bool           `json:"inStock"`
	Images  []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductImage is an uploaded image attached to a product. At most one image
// per product may be marked main.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	URL       string `json:"url" gorm:"type:varchar(512);not null"`
	IsMain    bool   `json:"isMain"`
	AltText   string `json:"altText" gorm:"type:varchar(255)"`
}
