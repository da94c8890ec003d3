package dto

// CourseCreateRequest carries fields for a new course.
type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published"`
	Order       int    `json:"order"`
}

// CourseUpdateRequest carries a partial course patch. Nil fields are left
// untouched in storage.
type CourseUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft published"`
	Order       *int    `json:"order"`
}

// LessonCreateRequest carries fields for a new lesson.
type LessonCreateRequest struct {
	CourseID    string `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	IsPublished bool   `json:"is_published"`
	Order       int    `json:"order"`
}

// LessonUpdateRequest carries a partial lesson patch.
type LessonUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
	IsPublished *bool   `json:"is_published"`
	Order       *int    `json:"order"`
}

// TeamMemberCreateRequest carries fields for a new team member.
type TeamMemberCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	ImageURL string `json:"image_url"`
	IsActive bool   `json:"is_active"`
	Order    int    `json:"order"`
}

// TeamMemberUpdateRequest carries a partial team member patch.
type TeamMemberUpdateRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	ImageURL *string `json:"image_url"`
	IsActive *bool   `json:"is_active"`
	Order    *int    `json:"order"`
}

// StatusCheckCreateRequest carries a client health-check ping.
type StatusCheckCreateRequest struct {
	ClientName string `json:"client_name" validate:"required"`
}

// UploadResponse is returned after a successful file upload.
type UploadResponse struct {
	FileURL string `json:"file_url"`
}
