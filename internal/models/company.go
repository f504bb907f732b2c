package models

import "time"

// Company is the startup profile, one per user. The narrative fields feed
// the agents' context; CodebaseFiles tracks uploaded workspace paths.
type Company struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Industry           string    `json:"industry,omitempty"`
	Stage              string    `json:"stage,omitempty"`
	CompanyInfo        string    `json:"company_info,omitempty"`
	ProductOverview    string    `json:"product_overview,omitempty"`
	TechStack          string    `json:"tech_stack,omitempty"`
	GoToMarketStrategy string    `json:"go_to_market_strategy,omitempty"`
	CodebaseFiles      []string  `json:"codebase_files,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CompanyCreate is the payload for creating a company profile.
type CompanyCreate struct {
	UserID             string `json:"user_id"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	Industry           string `json:"industry,omitempty"`
	Stage              string `json:"stage,omitempty"`
	CompanyInfo        string `json:"company_info,omitempty"`
	ProductOverview    string `json:"product_overview,omitempty"`
	TechStack          string `json:"tech_stack,omitempty"`
	GoToMarketStrategy string `json:"go_to_market_strategy,omitempty"`
}

// CompanyUpdate is a partial update; nil fields are left untouched.
type CompanyUpdate struct {
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	Industry           *string `json:"industry,omitempty"`
	Stage              *string `json:"stage,omitempty"`
	CompanyInfo        *string `json:"company_info,omitempty"`
	ProductOverview    *string `json:"product_overview,omitempty"`
	TechStack          *string `json:"tech_stack,omitempty"`
	GoToMarketStrategy *string `json:"go_to_market_strategy,omitempty"`
}

// CompanyProfileSuggestion is the AI-generated draft of the narrative
// profile fields.
type CompanyProfileSuggestion struct {
	CompanyInfo        string `json:"company_info"`
	ProductOverview    string `json:"product_overview"`
	TechStack          string `json:"tech_stack"`
	GoToMarketStrategy string `json:"go_to_market_strategy"`
}
