package domain

type Product struct {
	ID            int64   `db:"id"`
	Name          string  `db:"name"`
	Description   string  `db:"description"`
	ImageFilename *string `db:"image_filename"`
	CreatedAt     int64   `db:"created_at"`
	UpdatedAt     int64   `db:"updated_at"`
}
