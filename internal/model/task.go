package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation error")

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusCompleted  TaskStatus = "completed"
	StatusInProgress TaskStatus = "in_progress"
)

// Task - пользовательские поля задачи, без идентификатора
type Task struct {
	Title       string     `json:"title" bson:"title" validate:"required,min=1,max=100"`
	Description string     `json:"description" bson:"description" validate:"required,min=1,max=500"`
	Status      TaskStatus `json:"status" bson:"status" validate:"required,oneof=pending completed in_progress"`
}

// StoredTask - задача в хранилище, ID назначается хранилищем при создании
type StoredTask struct {
	ID string `json:"id"`
	Task
}

// ValidationError описывает первое нарушенное поле. errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var validate = validator.New()

// NewTask собирает и валидирует задачу. Пустой статус означает pending.
func NewTask(title, description string, status TaskStatus) (Task, error) {
	t := Task{Title: title, Description: description, Status: status}
	t.ApplyDefaults()
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = StatusPending
	}
}

func (t Task) Validate() error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			Field:  strings.ToLower(fe.Field()),
			Reason: reason(fe),
		}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusInProgress:
		return true
	}
	return false
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
