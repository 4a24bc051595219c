package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		username string
		email    string
		wantErr  error
	}{
		{
			name:     "валидный пароль",
			password: "Abc12345",
			username: "carlos",
			email:    "carlos@example.com",
			wantErr:  nil,
		},
		{
			name:     "слишком короткий",
			password: "Abc123",
			wantErr:  ErrTooShort,
		},
		{
			name:     "только цифры",
			password: "12309845",
			wantErr:  ErrAllNumeric,
		},
		{
			name:     "распространённый пароль",
			password: "password123",
			wantErr:  ErrTooCommon,
		},
		{
			name:     "совпадает с именем пользователя",
			password: "CarlosMendez",
			username: "carlosmendez",
			wantErr:  ErrSimilarUser,
		},
		{
			name:     "совпадает с локальной частью email",
			password: "maria.lopez",
			email:    "Maria.Lopez@example.com",
			wantErr:  ErrSimilarUser,
		},
		{
			name:     "длинный пароль без нарушений",
			password: "correct-horse-battery",
			username: "staple",
			email:    "staple@example.com",
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPolicy(tt.password, tt.username, tt.email)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
