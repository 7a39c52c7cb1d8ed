package models

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError — ошибка валидации конкретного поля.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError — набор ошибок валидации сущности.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError достаёт *ValidationError из цепочки ошибок.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func v() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]; name != "" && name != "-" {
				return name
			}

			return toSnake(fld.Name)
		})
		_ = validate.RegisterValidation("runemax", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}

			return utf8.RuneCountInString(fl.Field().String()) <= n
		})
		_ = validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
	})

	return validate
}

// ValidateStruct прогоняет теги validate и собирает ошибки полей.
// Возвращает nil либо *ValidationError.
func ValidateStruct(s any) error {
	err := v().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "_", Rule: "invalid", Message: err.Error()}}}
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}

	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "runemax", "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "objectid":
		return "must be a valid id"
	case "email":
		return "must be a valid email"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}

// CreateCommentInput — входные данные для создания комментария.
type CreateCommentInput struct {
	VideoID  string `json:"video_id" validate:"required,objectid"`
	ParentID string `json:"parent_id" validate:"omitempty,objectid"`
	Content  string `json:"content" validate:"required,runemax=500"`
}

// Normalize обрезает пробелы вокруг текста и идентификаторов.
func (in CreateCommentInput) Normalize() CreateCommentInput {
	in.VideoID = strings.TrimSpace(in.VideoID)
	in.ParentID = strings.TrimSpace(in.ParentID)
	in.Content = strings.TrimSpace(in.Content)

	return in
}

// Validate проверяет уже нормализованный ввод.
func (in CreateCommentInput) Validate() error {
	return ValidateStruct(in)
}

type contentOnly struct {
	Content string `json:"content" validate:"required,runemax=500"`
}

// ValidateCommentContent проверяет текст комментария после TrimSpace.
func ValidateCommentContent(content string) error {
	return ValidateStruct(contentOnly{Content: strings.TrimSpace(content)})
}

type reasonOnly struct {
	Reason string `json:"reason" validate:"required,oneof=spam inappropriate harassment hate_speech other"`
}

// ValidateReportReason проверяет причину жалобы.
func ValidateReportReason(reason string) error {
	return ValidateStruct(reasonOnly{Reason: reason})
}

// ValidateID проверяет идентификатор сущности MongoDB.
func ValidateID(field, id string) error {
	if primitive.IsValidObjectID(id) {
		return nil
	}

	return &ValidationError{Fields: []FieldError{{Field: field, Rule: "objectid", Message: "must be a valid id"}}}
}

// CreateVideoInput — подтверждение загрузки и метаданные видео.
type CreateVideoInput struct {
	ObjectKey   string   `json:"object_key" validate:"required"`
	Title       string   `json:"title" validate:"required,runemax=100"`
	Description string   `json:"description" validate:"runemax=2000"`
	Tags        []string `json:"tags" validate:"max=20,dive,required,runemax=50"`
	DurationSec float64  `json:"duration" validate:"gte=0,lte=600"`
	Width       int32    `json:"width" validate:"gte=0"`
	Height      int32    `json:"height" validate:"gte=0"`
}

// Normalize обрезает пробелы и убирает пустые теги.
func (in CreateVideoInput) Normalize() CreateVideoInput {
	in.ObjectKey = strings.TrimSpace(in.ObjectKey)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]struct{}, len(in.Tags))
	for _, t := range in.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}

		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	in.Tags = tags

	return in
}

func (in CreateVideoInput) Validate() error {
	return ValidateStruct(in)
}

// UploadRequest — запрос presigned URL для загрузки видео.
type UploadRequest struct {
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes" validate:"gt=0"`
}

func (in UploadRequest) Validate() error {
	return ValidateStruct(in)
}

// RegisterInput — регистрация пользователя.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (in RegisterInput) Normalize() RegisterInput {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	return in
}

func (in RegisterInput) Validate() error {
	return ValidateStruct(in)
}

// LoginInput — вход по email и паролю.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in LoginInput) Normalize() LoginInput {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	return in
}

func (in LoginInput) Validate() error {
	return ValidateStruct(in)
}

// ParseUserID разбирает UUID пользователя с ошибкой валидации поля.
func ParseUserID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, &ValidationError{Fields: []FieldError{{Field: field, Rule: "uuid", Message: "must be a valid uuid"}}}
	}

	return id, nil
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
