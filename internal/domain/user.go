package domain

// UserLevel is the privilege level attached to a user account.
type UserLevel int

const (
	LevelCustomer UserLevel = 0
	LevelAdmin    UserLevel = 1
)

func (l UserLevel) Valid() bool {
	return l == LevelCustomer || l == LevelAdmin
}

// User is a registered account. Password holds the bcrypt hash at rest; the
// raw password never reaches the store. Level is a pointer so the protected
// projection can drop it without it reading as LevelCustomer.
type User struct {
	ID        string     `json:"id,omitempty" gorm:"type:uuid;primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null"`
	Password  string     `json:"password" gorm:"not null"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Level     *UserLevel `json:"level,omitempty" gorm:"not null"`
}

// Levelf returns a pointer to l, for building User literals.
func Levelf(l UserLevel) *UserLevel {
	return &l
}

// Session is the single live session for a user. Secret is the refresh
// credential string itself; session existence is the source of truth for
// whether that credential is still live.
type Session struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	Secret string `json:"secret" gorm:"not null"`
	UserID string `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
}
