package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

type Tag struct {
	ID   int64  `json:"id" validate:"required"`
	Name string `json:"name"`
}

type News struct {
	ID       int64     `json:"id" validate:"required"`
	Title    string    `json:"title"`
	Date     Timestamp `json:"date"`
	Body     string    `json:"body"`
	AuthorID int64     `json:"author_id"`
	Tags     []Tag     `json:"tags"`
	Preview  string    `json:"preview"`
	ImageURL *string   `json:"image_url"`
}

type Dog struct {
	ID                 int64   `json:"id" validate:"required"`
	Name               string  `json:"name"`
	Age                int     `json:"age"`
	Breed              string  `json:"breed"`
	Description        string  `json:"description"`
	IntakeDate         Date    `json:"intake_date"`
	VeterinaryPassport bool    `json:"veterinary_passport"`
	Gender             Gender  `json:"gender"`
	Tags               []Tag   `json:"tags"`
	ImageURL           *string `json:"image_url"`
}

type DogSlide struct {
	ID       int64  `json:"id" validate:"required"`
	ImageURL string `json:"image_url"`
}

type Stats struct {
	NewRequestsCount int `json:"new_requests_count"`
	TotalDogsCount   int `json:"total_dogs_count"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type RequestType string

const (
	RequestTypeAdoption RequestType = "Усыновление"
	RequestTypeGuardian RequestType = "Опека"
)

type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "Новая"
	RequestStatusInProgress RequestStatus = "В работе"
	RequestStatusCompleted  RequestStatus = "Завершена"
)

// NewsInput is the body for creating or replacing a news item. Tags are a
// comma-separated string on the write side.
type NewsInput struct {
	Title       string    `json:"title" validate:"required"`
	Date        Timestamp `json:"date"`
	Body        string    `json:"body" validate:"required"`
	AuthorID    int64     `json:"author_id"`
	Tags        *string   `json:"tags"`
	Preview     string    `json:"preview"`
	NewsImageID *int64    `json:"news_image_id"`
}

type AdoptionDetails struct {
	FamilyMemberCount        string `json:"family_member_count"`
	HadExperienceAdoptionPet string `json:"had_experience_adoption_pet"`
	AdoptionPurpose          string `json:"adoption_purpose"`
	HousingType              string `json:"housing_type"`
	HousingArea              string `json:"housing_area"`
}

// NewAdoptionRequest is the payload a visitor submits for a dog.
type NewAdoptionRequest struct {
	DogID           int64            `json:"dog_id"`
	FullName        string           `json:"full_name"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	Status          RequestStatus    `json:"status"`
	Type            RequestType      `json:"type"`
	AdoptionDetails *AdoptionDetails `json:"adoption_details,omitempty"`
}

type AdoptionRequest struct {
	ID              int64            `json:"id" validate:"required"`
	DogID           int64            `json:"dog_id"`
	FullName        string           `json:"full_name"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	Status          RequestStatus    `json:"status"`
	Type            RequestType      `json:"type"`
	CreatedAt       Timestamp        `json:"created_at"`
	ClosedAt        *Timestamp       `json:"closed_at"`
	AdoptionRequest *AdoptionDetails `json:"adoption_request"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Timestamp accepts ISO-8601 values with or without a zone offset; the API
// emits naive datetimes, which are read as UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Date is a calendar date in YYYY-MM-DD form.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(dateLayout))
}
