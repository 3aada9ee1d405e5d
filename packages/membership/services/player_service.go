package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"membership/models"

	"auth/handlers"
	authServices "auth/services"
	authUtils "auth/utils"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("player not found")
	ErrWrongStatus = errors.New("player is not in the required status")
	ErrNameTaken   = errors.New("baller name already registered")
	ErrAlreadyPaid = errors.New("already paid for this quarter")
	ErrUnderReview = errors.New("evidence already under review")
	ErrNotReviewed = errors.New("evidence not found or already reviewed")
)

type PlayerService struct {
	db    *gorm.DB
	email authServices.EmailService
}

func NewPlayerService(db *gorm.DB, email authServices.EmailService) *PlayerService {
	return &PlayerService{db: db, email: email}
}

// Signup files a pending registration.
func (s *PlayerService) Signup(req models.SignupRequest) (*models.Player, error) {
	player := models.Player{
		FirstName:     strings.TrimSpace(req.FirstName),
		Surname:       strings.TrimSpace(req.Surname),
		BallerName:    strings.TrimSpace(req.BallerName),
		JerseyNumber:  req.JerseyNumber,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		WhatsappPhone: strings.TrimSpace(req.WhatsappPhone),
		Status:        models.PlayerPending,
	}
	if err := s.db.Create(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return &player, nil
}

// Pending lists registrations awaiting review, oldest first.
func (s *PlayerService) Pending() ([]models.Player, error) {
	var players []models.Player
	err := s.db.Where("status = ?", models.PlayerPending).Order("created_at").Find(&players).Error
	return players, err
}

// Approve turns a pending registration into a member: generates the initial
// password, stores the hash and mails the credentials. The approval is saved
// before the mail goes out; a failed send never rolls it back.
func (s *PlayerService) Approve(playerID uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if player.Status != models.PlayerPending {
		return nil, ErrWrongStatus
	}

	password, err := authUtils.GeneratePlayerPassword()
	if err != nil {
		return nil, err
	}
	hash, err := authUtils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":           models.PlayerApproved,
		"password_hash":    hash,
		"password_display": password,
		"year_registered":  now.Year(),
		"approved_at":      &now,
	}
	if err := s.db.Model(&player).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.email.SendCredentials(player.Email, player.BallerName, password); err != nil {
		log.Printf("credentials email to %s failed: %v", player.Email, err)
	}
	return &player, nil
}

// Reject declines a pending registration.
func (s *PlayerService) Reject(playerID uint) error {
	return s.transitionFromPending(playerID, models.PlayerRejected)
}

func (s *PlayerService) transitionFromPending(playerID uint, status string) error {
	result := s.db.Model(&models.Player{}).
		Where("id = ? AND status = ?", playerID, models.PlayerPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWrongStatus
	}
	return nil
}

// Suspend blocks an approved member from logging in and voting.
func (s *PlayerService) Suspend(playerID uint) error {
	result := s.db.Model(&models.Player{}).
		Where("id = ? AND status = ?", playerID, models.PlayerApproved).
		Update("suspended", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PlayerService) Activate(playerID uint) error {
	return s.db.Model(&models.Player{}).Where("id = ?", playerID).
		Update("suspended", false).Error
}

// Approved lists approved members ordered by baller name.
func (s *PlayerService) Approved() ([]models.Player, error) {
	var players []models.Player
	err := s.db.Where("status = ?", models.PlayerApproved).Order("baller_name").Find(&players).Error
	return players, err
}

// PlayerName resolves a display name; unknown ids come back as the number so
// projections never fail on a stale reference.
func (s *PlayerService) PlayerName(playerID uint) string {
	var player models.Player
	if err := s.db.Select("baller_name").First(&player, playerID).Error; err != nil {
		return fmt.Sprintf("%d", playerID)
	}
	return player.BallerName
}

// JerseyNumber returns a member's jersey number, 0 when unknown.
func (s *PlayerService) JerseyNumber(playerID uint) int {
	var player models.Player
	if err := s.db.Select("jersey_number").First(&player, playerID).Error; err != nil {
		return 0
	}
	return player.JerseyNumber
}

// FindApprovedPlayer implements the login credential lookup. Matching is
// case- and whitespace-insensitive on the baller name.
func (s *PlayerService) FindApprovedPlayer(ballerName string) (*handlers.PlayerAccount, error) {
	var player models.Player
	err := s.db.Where("LOWER(TRIM(baller_name)) = ? AND status = ?",
		strings.ToLower(strings.TrimSpace(ballerName)), models.PlayerApproved).
		First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &handlers.PlayerAccount{
		ID:           player.ID,
		BallerName:   player.BallerName,
		PasswordHash: player.PasswordHash,
		Suspended:    player.Suspended,
	}, nil
}
