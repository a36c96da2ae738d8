package models

import (
	"gorm.io/gorm"
)

// Category groups quizzes for the mobile app home screen.
type Category struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Image    string `gorm:"default:''" json:"image"`
	Serial   int    `gorm:"index;default:0" json:"serial"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Quiz is a playable set of questions within a category.
type Quiz struct {
	gorm.Model
	Title       string   `gorm:"not null" json:"title"`
	CategoryID  uint     `gorm:"index;not null" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"-"`
	Description string   `gorm:"default:''" json:"description"`
	Image       string   `gorm:"default:''" json:"image"`
	EntryCoins  int64    `gorm:"default:0" json:"entry_coins"`
	PrizeCoins  int64    `gorm:"default:0" json:"prize_coins"`
	Serial      int      `gorm:"index;default:0" json:"serial"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
}

// Question is a four-option multiple choice question. CorrectOption is the
// zero-based index into OptionA..OptionD.
type Question struct {
	gorm.Model
	QuizID        uint   `gorm:"index;not null" json:"quiz_id"`
	Quiz          Quiz   `gorm:"foreignKey:QuizID" json:"-"`
	Text          string `gorm:"not null" json:"text"`
	OptionA       string `gorm:"not null" json:"option_a"`
	OptionB       string `gorm:"not null" json:"option_b"`
	OptionC       string `gorm:"not null" json:"option_c"`
	OptionD       string `gorm:"not null" json:"option_d"`
	CorrectOption int    `gorm:"not null" json:"correct_option"`
	Coins         int64  `gorm:"default:0" json:"coins"`
	Image         string `gorm:"default:''" json:"image"`
	Serial        int    `gorm:"index;default:0" json:"serial"`
}

// Banner is a promotional slide shown in the app, ordered by Serial.
type Banner struct {
	gorm.Model
	Title     string `gorm:"not null" json:"title"`
	Image     string `gorm:"not null" json:"image"`
	TargetURL string `gorm:"default:''" json:"target_url"`
	Serial    int    `gorm:"index;default:0" json:"serial"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}
