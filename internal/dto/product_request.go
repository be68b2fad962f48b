package dto

type ProductRequest struct {
	ID            int64   `form:"-"`
	Name          string  `form:"name"`
	Description   string  `form:"description"`
	ImageFilename *string `form:"-"`
}
