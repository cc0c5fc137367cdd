package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Category is the closed set of apparel categories sold by the shop
type Category string

const (
	CategorySimple     Category = "simple"
	CategoryOversized  Category = "oversized"
	CategoryDelave     Category = "delave"
	CategorySweatshirt Category = "sweatshirt"
	CategoryHoodie     Category = "hoodie"
	CategoryTote       Category = "tote"
	CategoryAnime      Category = "anime"
)

// Valid reports whether the category is a member of the closed enumeration
func (c Category) Valid() bool {
	switch c {
	case CategorySimple, CategoryOversized, CategoryDelave,
		CategorySweatshirt, CategoryHoodie, CategoryTote, CategoryAnime:
		return true
	}
	return false
}

// AnimeTag is the optional sub-tag for anime-category products
type AnimeTag string

const (
	AnimeOnePiece      AnimeTag = "one_piece"
	AnimeHunterXHunter AnimeTag = "hunter_x_hunter"
	AnimeNaruto        AnimeTag = "naruto"
	AnimeDragonBall    AnimeTag = "dragon_ball"
	AnimeJujutsuKaisen AnimeTag = "jujutsu_kaisen"
	AnimeAttackOnTitan AnimeTag = "attack_on_titan"
	AnimeDeathNote     AnimeTag = "death_note"
	AnimeOther         AnimeTag = "other"
)

// Valid reports whether the anime tag is a member of the closed enumeration
func (a AnimeTag) Valid() bool {
	switch a {
	case AnimeOnePiece, AnimeHunterXHunter, AnimeNaruto, AnimeDragonBall,
		AnimeJujutsuKaisen, AnimeAttackOnTitan, AnimeDeathNote, AnimeOther:
		return true
	}
	return false
}

// Product represents a catalog item. Prices are in MAD.
type Product struct {
	ID          uint                `json:"id" gorm:"primarykey"`
	Name        string              `json:"name" gorm:"type:varchar(255);not null"`
	Description string              `json:"description" gorm:"type:text"`
	Price       float64             `json:"price" gorm:"not null"`
	Category    Category            `json:"category" gorm:"type:varchar(32);not null;index"`
	Anime       AnimeTag            `json:"anime,omitempty" gorm:"type:varchar(32)"`
	Sizes       pq.StringArray      `json:"sizes" gorm:"type:text[]"`
	Colors      pq.StringArray      `json:"colors" gorm:"type:text[]"`
	Images      pq.StringArray      `json:"images" gorm:"type:text[]"`
	ColorImages map[string][]string `json:"color_images" gorm:"type:jsonb;serializer:json"`
	Stock       int                 `json:"stock" gorm:"default:0"`
	Featured    bool                `json:"featured" gorm:"default:false;index"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `json:"deleted_at,omitempty" gorm:"index"`
}

// ImagesForColor returns the image list for a color, falling back to the
// default image list when the color has no dedicated images.
func (p *Product) ImagesForColor(color string) []string {
	if imgs, ok := p.ColorImages[color]; ok && len(imgs) > 0 {
		return imgs
	}
	return p.Images
}

// HasSize reports whether the label is in the product's size list
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether the label is in the product's color list
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
