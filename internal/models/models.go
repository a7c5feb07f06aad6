package models

// Rows mirror the database columns. JSON-shaped columns are kept as raw text
// and decoded by the services layer.

type BlogPostRow struct {
	Slug            string `db:"slug"`
	Title           string `db:"title"`
	Excerpt         string `db:"excerpt"`
	Image           string `db:"image"`
	Date            string `db:"date"`
	Category        string `db:"category"`
	ReadTime        string `db:"read_time"`
	Author          string `db:"author"`
	Content         string `db:"content"`
	AIAnalysis      string `db:"ai_analysis"`
	FAQs            string `db:"faqs"`
	HTMLContent     string `db:"html_content"`
	FocusKeyword    string `db:"focus_keyword"`
	Status          string `db:"status"`
	MetaTitle       string `db:"meta_title"`
	MetaDescription string `db:"meta_description"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

type ServiceRow struct {
	ID              string  `db:"id"`
	Title           string  `db:"title"`
	Description     string  `db:"description"`
	Image           string  `db:"image"`
	Features        string  `db:"features"`
	MediaType       *string `db:"media_type"`
	HTMLContent     string  `db:"html_content"`
	FAQs            string  `db:"faqs"`
	FocusKeyword    string  `db:"focus_keyword"`
	Status          string  `db:"status"`
	MetaTitle       string  `db:"meta_title"`
	MetaDescription string  `db:"meta_description"`
	Slug            string  `db:"slug"`
	SortOrder       int     `db:"sort_order"`
	CreatedAt       string  `db:"created_at"`
	UpdatedAt       string  `db:"updated_at"`
}

type ProjectRow struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	VideoURL        string `db:"video_url"`
	Image           string `db:"image"`
	Description     string `db:"description"`
	Category        string `db:"category"`
	Location        string `db:"location"`
	HTMLContent     string `db:"html_content"`
	FAQs            string `db:"faqs"`
	FocusKeyword    string `db:"focus_keyword"`
	Status          string `db:"status"`
	MetaTitle       string `db:"meta_title"`
	MetaDescription string `db:"meta_description"`
	Slug            string `db:"slug"`
	SortOrder       int    `db:"sort_order"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

type GalleryRow struct {
	ID        string `db:"id"`
	Src       string `db:"src"`
	Title     string `db:"title"`
	Category  string `db:"category"`
	SortOrder int    `db:"sort_order"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type SiteSettingRow struct {
	Key       string `db:"key"`
	Value     string `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

type AdminUser struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	CreatedAt    string  `db:"created_at"`
	LastLoginAt  *string `db:"last_login_at"`
}
