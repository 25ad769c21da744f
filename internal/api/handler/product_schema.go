package handler

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Image       string  `json:"image"       validate:"required,startswith=data:image/"`
}

// updateProductRequest matches createProductRequest except that image is
// optional: omission leaves the existing image unchanged.
type updateProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Image       string  `json:"image"       validate:"omitempty,startswith=data:image/"`
}

type messageResponse struct {
	Message string `json:"message"`
}
