package password

import (
	"errors"
	"strings"
	"unicode"
)

// MinLength — минимальная длина пароля.
const MinLength = 8

// Ошибки политики сложности. Текст показывается пользователю как есть.
var (
	ErrTooShort    = errors.New("password must be at least 8 characters long")
	ErrAllNumeric  = errors.New("password cannot be entirely numeric")
	ErrTooCommon   = errors.New("password is too common")
	ErrSimilarUser = errors.New("password is too similar to the username or email")
)

// Короткий список самых распространённых паролей. Сравнение без учёта регистра.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"admin123":    {},
	"welcome1":    {},
	"letmein1":    {},
	"sunshine":    {},
	"football":    {},
	"baseball":    {},
	"superman":    {},
	"princess":    {},
	"dragon123":   {},
	"master123":   {},
	"monkey123":   {},
}

// CheckPolicy проверяет пароль на соответствие политике сложности:
// минимальная длина, не только цифры, не из списка распространённых,
// не совпадает с именем пользователя или локальной частью email.
// Возвращает первую нарушенную проверку.
func CheckPolicy(password, username, email string) error {
	if len(password) < MinLength {
		return ErrTooShort
	}
	if isAllNumeric(password) {
		return ErrAllNumeric
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return ErrTooCommon
	}

	lower := strings.ToLower(password)
	if username != "" && lower == strings.ToLower(username) {
		return ErrSimilarUser
	}
	if local, _, found := strings.Cut(email, "@"); found && local != "" &&
		lower == strings.ToLower(local) {
		return ErrSimilarUser
	}
	return nil
}

func isAllNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
