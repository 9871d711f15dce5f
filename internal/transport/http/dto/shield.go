package dto

// CreateShieldRequest covers both shield creation paths: the multipart
// form (handler attaches the file separately) and the with-url variant
// where ImageURL carries a client-uploaded object URL.
type CreateShieldRequest struct {
	Title        string `json:"title" form:"title" validate:"required"`
	Description  string `json:"description" form:"description" validate:"required"`
	Symbolism    string `json:"symbolism" form:"symbolism"`
	ImageURL     string `json:"imageUrl" form:"imageUrl"`
	IsMainShield bool   `json:"isMainShield" form:"isMainShield"`
}

type UpdateShieldRequest struct {
	Title        *string `json:"title" form:"title"`
	Description  *string `json:"description" form:"description"`
	Symbolism    *string `json:"symbolism" form:"symbolism"`
	ImageURL     *string `json:"imageUrl" form:"imageUrl"`
	IsMainShield *bool   `json:"isMainShield" form:"isMainShield"`
}
