package models

import (
	"time"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:15;unique;not null"  json:"name"`
}

type Item struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"              json:"id"`
	Name        string   `gorm:"size:100;not null"                     json:"name"`
	CategoryID  uint     `gorm:"index;not null"                        json:"category_id"`
	Category    Category `gorm:"constraint:OnDelete:RESTRICT"          json:"-"`
	Description string   `gorm:"not null"                              json:"description"`
	Picture     string   `gorm:"size:50;not null;default:default.jpg"  json:"picture"`
	Price       int64    `gorm:"not null;check:price>=0"               json:"price"`
	Carbon      int64    `gorm:"not null;check:carbon>=0"              json:"carbon"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string `gorm:"size:20;unique;not null"   json:"username"`
	PasswordHash string `gorm:"not null"                  json:"-"`
}

// CartItem and InventoryItem are join rows; the composite key gives set semantics.
type CartItem struct {
	UserID    uint      `gorm:"primaryKey"      json:"user_id"`
	ItemID    uint      `gorm:"primaryKey"      json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type InventoryItem struct {
	UserID    uint      `gorm:"primaryKey"      json:"user_id"`
	ItemID    uint      `gorm:"primaryKey"      json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Title     string    `gorm:"size:100;not null"                  json:"title"`
	Text      string    `gorm:"size:1000;not null"                 json:"text"`
	UserID    uint      `gorm:"index;not null"                     json:"user_id"`
	User      User      `json:"-"`
	ItemID    uint      `gorm:"index;not null"                     json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"        json:"id"`
	Token     string `gorm:"unique;not null"   json:"token"`
	UserID    uint   `gorm:"index;not null"    json:"user_id"`
	JTI       string `gorm:"uniqueIndex;not null" json:"jti"`
	ExpiresAt int64  `gorm:"not null"          json:"expires_at"`
	Revoked   bool   `gorm:"default:false"     json:"revoked"`
}

// All lists every table in migration order.
func All() []any {
	return []any{&Category{}, &Item{}, &User{}, &CartItem{}, &InventoryItem{}, &Review{}, &RefreshToken{}}
}

func (c Category) ToDomain() domain.Category {
	return domain.Category{ID: domain.CategoryID(c.ID), Name: c.Name}
}

func (i Item) ToDomain() domain.Item {
	return domain.Item{
		ID:           domain.ItemID(i.ID),
		Name:         i.Name,
		CategoryID:   domain.CategoryID(i.CategoryID),
		CategoryName: i.Category.Name,
		Description:  i.Description,
		Picture:      i.Picture,
		Price:        domain.Money(i.Price),
		Carbon:       domain.CarbonScore(i.Carbon),
	}
}

func ItemFromDomain(it domain.Item) Item {
	return Item{
		ID:          uint(it.ID),
		Name:        it.Name,
		CategoryID:  uint(it.CategoryID),
		Description: it.Description,
		Picture:     it.Picture,
		Price:       int64(it.Price),
		Carbon:      int64(it.Carbon),
	}
}

func (u User) ToDomain() domain.User {
	return domain.User{ID: domain.UserID(u.ID), Username: u.Username, PasswordHash: u.PasswordHash}
}

func (r Review) ToDomain() domain.Review {
	return domain.Review{
		ID:        domain.ReviewID(r.ID),
		Rating:    r.Rating,
		Title:     r.Title,
		Text:      r.Text,
		UserID:    domain.UserID(r.UserID),
		Username:  r.User.Username,
		ItemID:    domain.ItemID(r.ItemID),
		CreatedAt: r.CreatedAt,
	}
}

func (t RefreshToken) ToDomain() domain.RefreshToken {
	return domain.RefreshToken{
		JTI:       t.JTI,
		TokenHash: t.Token,
		UserID:    domain.UserID(t.UserID),
		ExpiresAt: time.Unix(t.ExpiresAt, 0).UTC(),
		Revoked:   t.Revoked,
	}
}

func RefreshFromDomain(t domain.RefreshToken) RefreshToken {
	return RefreshToken{
		Token:     t.TokenHash,
		UserID:    uint(t.UserID),
		JTI:       t.JTI,
		ExpiresAt: t.ExpiresAt.Unix(),
		Revoked:   t.Revoked,
	}
}
