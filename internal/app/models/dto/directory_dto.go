package dto

// CreateLocationRequest creates a new location; country defaults when omitted
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Country string `json:"country"`
}

// UpdateLocationRequest updates location fields
type UpdateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	Country  string `json:"country" binding:"required"`
	IsActive bool   `json:"isActive"`
}

// CreateSkillRequest creates a new skill
type CreateSkillRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateSkillRequest updates skill fields
type UpdateSkillRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	IsActive    bool    `json:"isActive"`
}
