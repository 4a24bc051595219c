// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков: успешные ответы, ошибки
// и сообщения валидации в едином формате.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — общий текст ошибки (опционально).
// Поле Fields — ошибки по конкретным полям (опционально, при ошибке валидации).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
	Data   any               `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Status: StatusOK}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с общей ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// FieldError возвращает Response с ошибкой, привязанной к конкретному полю.
// Используется для бизнес-ошибок регистрации: несовпадение паролей,
// слабый пароль, несуществующий план.
func FieldError(field, msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
		Fields: map[string]string{field: msg},
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение превращается в человеко-читаемый текст и привязывается
// к своему полю (имя поля приводится к snake_case JSON-стилю запроса).
func ValidationError(errs validator.ValidationErrors) Response {
	fields := make(map[string]string, len(errs))
	var errsMsgs []string

	for _, err := range errs {
		field := toSnake(err.Field())
		var msg string
		switch err.ActualTag() {
		case "required":
			msg = fmt.Sprintf("field %s is a required field", field)
		case "min":
			msg = fmt.Sprintf("field %s is too short", field)
		case "max":
			msg = fmt.Sprintf("field %s is too long", field)
		case "email":
			msg = fmt.Sprintf("field %s must be a valid email address", field)
		case "eqfield":
			msg = "passwords do not match"
			field = "password"
		case "gt", "gte":
			msg = fmt.Sprintf("field %s must be positive", field)
		case "oneof":
			msg = fmt.Sprintf("field %s has an unsupported value", field)
		default:
			msg = fmt.Sprintf("field %s is not valid", field)
		}
		fields[field] = msg
		errsMsgs = append(errsMsgs, msg)
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
		Fields: fields,
	}
}

// toSnake переводит имя поля структуры в snake_case имя JSON-поля.
func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
