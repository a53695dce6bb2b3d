// internal/domain/user.go
package domain

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
// ID назначается базой при первом сохранении и дальше не меняется.
type User struct {
	ID      int64  `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email" gorm:"uniqueIndex"`
	Phone   string `json:"phone" db:"phone"`
	Address string `json:"address" db:"address"`
}

func (User) TableName() string {
	return "users"
}

// ApplyDetails перезаписывает все изменяемые поля значениями из details.
// ID не трогаем.
func (u *User) ApplyDetails(details User) {
	u.Name = details.Name
	u.Email = details.Email
	u.Phone = details.Phone
	u.Address = details.Address
}
