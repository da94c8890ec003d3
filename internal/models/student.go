package models

import "time"

// Course levels a student can progress through.
const (
	LevelOne   = "level_1"
	LevelTwo   = "level_2"
	LevelThree = "level_3"
)

// Student represents a learner account, created lazily on first login.
type Student struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	TotalScore       int       `json:"total_score"`
	IsActive         bool      `json:"is_active"`
	CurrentLevel     string    `json:"current_level"`
	CompletedCourses []string  `json:"completed_courses"`
	CreatedAt        time.Time `json:"created_at"`
	LastActivity     time.Time `json:"last_activity"`
}
