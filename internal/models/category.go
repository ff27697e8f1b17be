package models

// Category is a generated quiz category. Categories are transient: they
// live in the result cache and the in-process id-reuse map, never in the
// database. CachedID is set by the gateway when the model judged the name
// semantically equivalent to a previously issued category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Trending    bool   `json:"trending"`
	CachedID    string `json:"cachedId,omitempty"`
}

// Subcategory is a generated topic within a category.
type Subcategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Trending    bool   `json:"trending"`
	New         bool   `json:"new"`
	UsersTaken  int    `json:"usersTaken"`
	Color       string `json:"color,omitempty"`
}

type GetCategoriesRequest struct {
	CategoriesTitles []string `json:"categoriesTitles"`
	Refresh          bool     `json:"refresh"`
	Page             int      `json:"page"`
}

type SearchCategoriesRequest struct {
	Search           string   `json:"search"`
	CategoriesTitles []string `json:"categoriesTitles"`
}

type GetSubcategoriesRequest struct {
	Category              string   `json:"category"`
	ExistingSubcategories []string `json:"existingSubcategories"`
}

type SearchSubcategoriesRequest struct {
	CategoryTitle         string   `json:"categoryTitle"`
	Query                 string   `json:"query"`
	ExistingSubcategories []string `json:"existingSubcategories"`
}
