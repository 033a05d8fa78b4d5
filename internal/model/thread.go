package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
)

// Question is a lesson-scoped question thread root. Author identity is
// denormalized onto the row because users live in an external service.
type Question struct {
	UUIDBase
	LessonID         string     `gorm:"index;type:varchar(36);not null" json:"lessonId"`
	UserID           uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	UserName         string     `gorm:"size:100" json:"userName"`
	UserType         UserRole   `gorm:"type:enum('student','instructor');default:'student'" json:"userType"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Content          string     `gorm:"type:text;not null" json:"content"`
	AttachmentURL    string     `gorm:"size:255" json:"attachmentUrl,omitempty"`
	Upvotes          int        `gorm:"default:0" json:"upvotes"`
	Views            int        `gorm:"default:0" json:"views"`
	IsResolved       bool       `gorm:"default:false" json:"isResolved"`
	AcceptedAnswerID *string    `gorm:"type:varchar(36)" json:"acceptedAnswerId"`
	ResolvedAt       *time.Time `json:"resolvedAt"`
	Answers          []Answer   `gorm:"foreignKey:QuestionID" json:"answers"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	UUIDBase
	QuestionID    string     `gorm:"index;type:varchar(36);not null" json:"questionId"`
	UserID        uint       `gorm:"index;type:bigint unsigned" json:"userId"`
	UserName      string     `gorm:"size:100" json:"userName"`
	UserType      UserRole   `gorm:"type:enum('student','instructor');default:'student'" json:"userType"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	AttachmentURL string     `gorm:"size:255" json:"attachmentUrl,omitempty"`
	Upvotes       int        `gorm:"default:0" json:"upvotes"`
	IsAccepted    bool       `gorm:"default:false" json:"isAccepted"`
	AcceptedAt    *time.Time `json:"acceptedAt"`
}

func (Answer) TableName() string {
	return "answers"
}
