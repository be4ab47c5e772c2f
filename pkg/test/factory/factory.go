package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskhub/internal/core/domain"
)

// DefaultPassword is the plaintext behind every factory-built user
// unless a test overrides EncryptedPassword.
const DefaultPassword = "secret123"

func NewUser(customData ...map[string]any) domain.User {
	defaults := map[string]any{
		"UUID":                uuid.New(),
		"IsActive":            true,
		"FailedLoginAttempts": 0,
		"CreatedAt":           time.Now(),
		"UpdatedAt":           time.Now(),
	}

	if !hasKey(customData, "EncryptedPassword") {
		hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		defaults["EncryptedPassword"] = string(hash)
	}

	return build(domain.User{}, defaults, customData)
}

func NewTask(customData ...map[string]any) domain.Task {
	// Pointer fields default to nil so generated tasks are undated and
	// unlisted unless a test says otherwise.
	defaults := map[string]any{
		"UUID":        uuid.New(),
		"Title":       "Write the quarterly report",
		"Description": "",
		"Status":      domain.StatusTodo,
		"Priority":    domain.PriorityMedium,
		"DueDate":     (*string)(nil),
		"CompletedAt": (*time.Time)(nil),
		"ListID":      (*int)(nil),
		"CreatedAt":   time.Now(),
		"UpdatedAt":   time.Now(),
	}

	return build(domain.Task{}, defaults, customData)
}

func NewList(customData ...map[string]any) domain.List {
	defaults := map[string]any{
		"UUID":      uuid.New(),
		"Name":      "Inbox",
		"Color":     domain.DefaultListColor,
		"Position":  0,
		"CreatedAt": time.Now(),
		"UpdatedAt": time.Now(),
	}

	return build(domain.List{}, defaults, customData)
}

func build[T any](zero T, defaults map[string]any, customData []map[string]any) T {
	instance := fab.New(zero)

	// fabricator's Build only reads its first overrides map, so merge
	// defaults and custom data into one map, later entries winning.
	merged := make(map[string]any, len(defaults))

	for key, value := range defaults {
		merged[key] = value
	}

	for _, data := range customData {
		for key, value := range data {
			merged[key] = value
		}
	}

	return instance.Build(merged)
}

func hasKey(customData []map[string]any, key string) bool {
	for _, data := range customData {
		if _, exists := data[key]; exists {
			return true
		}
	}

	return false
}
