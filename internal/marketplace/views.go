package marketplace

import "github.com/Skotchmaster/eco_shop/internal/domain"

type BrowseResult struct {
	Items      domain.ItemList   `json:"items"`
	Categories []domain.Category `json:"categories"`
	CategoryID domain.CategoryID `json:"category_id"`
	Search     string            `json:"search"`
	Sort       domain.SortKey    `json:"sort"`
}

type CartView struct {
	Items domain.ItemList `json:"items"`
	Total domain.Money    `json:"total"`
}

type CheckoutView struct {
	Items domain.ItemList `json:"items"`
	Total domain.Money    `json:"total"`
}

type ProfileView struct {
	User      domain.User     `json:"user"`
	Inventory domain.ItemList `json:"inventory"`
	Reviews   []domain.Review `json:"reviews"`
}

type ItemView struct {
	Item    domain.Item     `json:"item"`
	Reviews []domain.Review `json:"reviews"`
}
