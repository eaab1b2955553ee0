package db

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/careerconnect/internal/types"
)

// User represents a stored account record
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Bio          string    `json:"bio,omitempty"`
	Location     string    `json:"location,omitempty"`
	ResumeURL    string    `json:"resume_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, err := jsonbBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(source, a)
}

// EducationArray handles a JSONB array of education entries
type EducationArray []types.EducationEntry

func (a *EducationArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	source, err := jsonbBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(source, a)
}

// ExperienceArray handles a JSONB array of experience entries
type ExperienceArray []types.ExperienceEntry

func (a *ExperienceArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	source, err := jsonbBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(source, a)
}

func jsonbBytes(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("incompatible type for JSONB column")
	}
}
