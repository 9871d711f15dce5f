package dto

type CreateLeadershipRequest struct {
	Year         int     `json:"year" form:"year" validate:"required"`
	Jefatura     string  `json:"jefatura" form:"jefatura" validate:"required"`
	SecondName   *string `json:"secondName" form:"secondName"`
	ImageURL     *string `json:"imageUrl" form:"imageUrl"`
	DisplayOrder int     `json:"displayOrder" form:"displayOrder"`
}

type UpdateLeadershipRequest struct {
	Year         *int    `json:"year" form:"year"`
	Jefatura     *string `json:"jefatura" form:"jefatura"`
	SecondName   *string `json:"secondName" form:"secondName"`
	ImageURL     *string `json:"imageUrl" form:"imageUrl"`
	DisplayOrder *int    `json:"displayOrder" form:"displayOrder"`
}

type CreateMilestoneRequest struct {
	Year         int    `json:"year" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	IconName     string `json:"iconName" validate:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

type UpdateMilestoneRequest struct {
	Year         *int    `json:"year"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	IconName     *string `json:"iconName"`
	DisplayOrder *int    `json:"displayOrder"`
}

type CreateHistoricalImageRequest struct {
	Title        string `json:"title" form:"title" validate:"required"`
	Description  string `json:"description" form:"description"`
	ImageURL     string `json:"imageUrl" form:"imageUrl"`
	DisplayOrder int    `json:"displayOrder" form:"displayOrder"`
}

type UpdateHistoricalImageRequest struct {
	Title        *string `json:"title" form:"title"`
	Description  *string `json:"description" form:"description"`
	ImageURL     *string `json:"imageUrl" form:"imageUrl"`
	DisplayOrder *int    `json:"displayOrder" form:"displayOrder"`
}

type CreateShieldValueRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	IconName     string `json:"iconName" validate:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

type UpdateShieldValueRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	IconName     *string `json:"iconName"`
	DisplayOrder *int    `json:"displayOrder"`
}

type UpdateSiteConfigRequest struct {
	Name         *string `json:"name"`
	ShortName    *string `json:"shortName"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string `json:"contactPhone"`
	Address      *string `json:"address"`
	ScheduleText *string `json:"scheduleText"`
	LogoURL      *string `json:"logoUrl"`
	FaviconURL   *string `json:"faviconUrl"`
	FacebookURL  *string `json:"facebookUrl" validate:"omitempty,url"`
	InstagramURL *string `json:"instagramUrl" validate:"omitempty,url"`
	YoutubeURL   *string `json:"youtubeUrl" validate:"omitempty,url"`
}
