package entity

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	PasswordHash      string     `json:"-"`
	AvatarURL         string     `json:"avatar_url,omitempty"`
	XP                int        `json:"xp"`
	Coins             int        `json:"coins"`
	QuizDays          []string   `json:"quiz_days"`
	FreezeDays        []string   `json:"freeze_days"`
	StreakFreezeCount int        `json:"streak_freeze_count"`
	CurrentStreak     int        `json:"current_streak"`
	IsPremium         bool       `json:"is_premium"`
	PremiumUntil      *time.Time `json:"premium_until,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type PremiumCode struct {
	ID          uuid.UUID
	Code        string
	IsUsed      bool
	ExpiresAt   time.Time
	ActivatedBy *uuid.UUID
	ActivatedAt *time.Time
	CreatedAt   time.Time
}

type Question struct {
	ID      uuid.UUID `json:"id"`
	Subject string    `json:"subject"`
	Grade   string    `json:"grade"`
	Prompt  string    `json:"prompt"`
	Choices []string  `json:"choices"`
	Answer  int       `json:"answer"`
}

type Flashcard struct {
	ID      uuid.UUID `json:"id"`
	Subject string    `json:"subject"`
	Front   string    `json:"front"`
	Back    string    `json:"back"`
}

type Note struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"uid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Subject   string    `json:"subject,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeaderboardEntry struct {
	UserID    uuid.UUID `json:"uid"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	XP        int       `json:"xp"`
	Tier      string    `json:"tier"`
}
