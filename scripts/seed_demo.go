// Seed a handful of demo threads for local development.
//
// The server never needs this; it exists so a fresh database has something to
// show in the lesson Q&A views.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"log"

	"lesson_qa_backend/internal/config"
	"lesson_qa_backend/internal/model"
	"lesson_qa_backend/pkg/database"
	"lesson_qa_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var count int64
	if err := db.Model(&model.Question{}).Count(&count).Error; err != nil {
		log.Fatalf("failed to count questions: %v", err)
	}
	if count > 0 {
		log.Println("questions already present, nothing to seed")
		return
	}

	question := &model.Question{
		LessonID: "lesson-demo",
		UserID:   1001,
		UserName: "Demo Student",
		UserType: model.Student,
		Title:    "Why does my goroutine never exit?",
		Content:  "I start a goroutine reading from a channel but nothing ever closes it.",
	}
	if err := db.Create(question).Error; err != nil {
		log.Fatalf("failed to seed question: %v", err)
	}

	answers := []model.Answer{
		{
			QuestionID: question.ID,
			UserID:     1002,
			UserName:   "Demo Peer",
			UserType:   model.Student,
			Content:    "Close the channel from the sender side when you are done producing.",
			Upvotes:    2,
		},
		{
			QuestionID: question.ID,
			UserID:     2001,
			UserName:   "Demo Instructor",
			UserType:   model.Instructor,
			Content:    "Or pass a context and select on ctx.Done() so the reader can bail out.",
			Upvotes:    5,
		},
	}
	for i := range answers {
		if err := db.Create(&answers[i]).Error; err != nil {
			log.Fatalf("failed to seed answer: %v", err)
		}
	}

	log.Printf("seeded 1 question with %d answers under lesson-demo", len(answers))
}
